package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/service"
	"rugops/mocks"
)

func setupAuthService() (service.AuthService, *mocks.MockUserRepo, *mocks.MockTenantRepo) {
	userRepo := new(mocks.MockUserRepo)
	tenantRepo := new(mocks.MockTenantRepo)

	cfg := config.JWTConfig{
		Secret:             "test-secret-key-for-testing-only",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "rugops-test",
	}

	return service.NewAuthService(userRepo, tenantRepo, cfg), userRepo, tenantRepo
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	tenant := &domain.Tenant{
		ID:       tenantID,
		Name:     "Heritage Rug Care",
		Slug:     "heritage",
		IsActive: true,
	}
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", ctx, "heritage").Return(tenant, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(user, nil)

	tokens, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.True(t, tokens.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: tenantID, Slug: "heritage", IsActive: true,
	}, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(&domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     true,
	}, nil)

	_, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownTenantMapsToInvalidCredentials(t *testing.T) {
	svc, _, tenantRepo := setupAuthService()
	ctx := context.Background()

	tenantRepo.On("GetBySlug", ctx, "nope").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "nope",
		Email:      "owner@example.com",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveTenant(t *testing.T) {
	svc, _, tenantRepo := setupAuthService()
	ctx := context.Background()

	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: uuid.New(), Slug: "heritage", IsActive: false,
	}, nil)

	_, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: tenantID, Slug: "heritage", IsActive: true,
	}, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(&domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     false,
	}, nil)

	_, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         domain.RoleTechnician,
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: tenantID, Slug: "heritage", IsActive: true,
	}, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(user, nil)
	userRepo.On("GetByID", ctx, tenantID, user.ID).Return(user, nil)

	tokens, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: tenantID, Slug: "heritage", IsActive: true,
	}, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(user, nil)

	tokens, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(ctx, tokens.AccessToken)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", ctx, "heritage").Return(&domain.Tenant{
		ID: tenantID, Slug: "heritage", IsActive: true,
	}, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(user, nil)

	tokens, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokens.RefreshToken)

	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc, _, _ := setupAuthService()

	_, err := svc.ValidateToken("not-a-jwt")

	assert.Error(t, err)
}

func TestAuthService_ValidateToken_RejectsForeignIssuer(t *testing.T) {
	svc, userRepo, tenantRepo := setupAuthService()
	ctx := context.Background()
	tenantID := uuid.New()

	tenant := &domain.Tenant{ID: tenantID, Slug: "heritage", IsActive: true}
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        "owner@example.com",
		PasswordHash: hashPassword(t, "password123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	tenantRepo.On("GetBySlug", ctx, "heritage").Return(tenant, nil)
	userRepo.On("GetByEmail", ctx, tenantID, "owner@example.com").Return(user, nil)

	pair, err := svc.Login(ctx, service.LoginInput{
		TenantSlug: "heritage",
		Email:      "owner@example.com",
		Password:   "password123",
	})
	require.NoError(t, err)

	// Same secret, different issuer: the token must not validate.
	other := service.NewAuthService(userRepo, tenantRepo, config.JWTConfig{
		Secret:             "test-secret-key-for-testing-only",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "some-other-app",
	})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}

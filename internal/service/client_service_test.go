package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rugops/internal/domain"
	"rugops/internal/service"
	"rugops/mocks"
)

func TestClientService_Create(t *testing.T) {
	clientRepo := new(mocks.MockClientRepo)
	svc := service.NewClientService(clientRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	clientRepo.On("Create", ctx, mock.AnythingOfType("*domain.Client")).Return(nil)

	client, err := svc.Create(ctx, service.CreateClientInput{
		TenantID: tenantID,
		FullName: "Pat Doyle",
		Email:    "pat@example.com",
		Phone:    "555-0142",
	})

	require.NoError(t, err)
	assert.Equal(t, tenantID, client.TenantID)
	assert.Equal(t, "Pat Doyle", client.FullName)
	assert.NotEqual(t, uuid.Nil, client.ID)
}

func TestClientService_Update_PartialFields(t *testing.T) {
	clientRepo := new(mocks.MockClientRepo)
	svc := service.NewClientService(clientRepo)
	ctx := context.Background()
	tenantID := uuid.New()
	clientID := uuid.New()

	client := &domain.Client{
		ID:       clientID,
		TenantID: tenantID,
		FullName: "Pat Doyle",
		Phone:    "555-0142",
	}
	clientRepo.On("GetByID", ctx, tenantID, clientID).Return(client, nil)
	clientRepo.On("Update", ctx, client).Return(nil)

	newPhone := "555-0199"
	updated, err := svc.Update(ctx, tenantID, clientID, service.UpdateClientInput{
		Phone: &newPhone,
	})

	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, "Pat Doyle", updated.FullName)
}

func TestClientService_List_PassesSearch(t *testing.T) {
	clientRepo := new(mocks.MockClientRepo)
	svc := service.NewClientService(clientRepo)
	ctx := context.Background()
	tenantID := uuid.New()

	expected := []domain.Client{{ID: uuid.New(), FullName: "Pat Doyle"}}
	clientRepo.On("List", ctx, tenantID, "doyle", 0, 20).Return(expected, 1, nil)

	clients, total, err := svc.List(ctx, tenantID, "doyle", 0, 20)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, expected, clients)
}

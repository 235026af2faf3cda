package service_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rugops/internal/config"
	"rugops/internal/domain"
	"rugops/internal/port"
	"rugops/internal/service"
	"rugops/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 50,
		PresignExpiry: 3600,
	}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

// pdfContent returns minimal valid PDF bytes.
func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

// pngContent returns minimal valid PNG bytes (magic bytes).
func pngContent() []byte {
	// PNG magic bytes: 137 80 78 71 13 10 26 10
	header := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

// jpegContent returns minimal valid JPEG bytes (magic bytes).
func jpegContent() []byte {
	header := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	return append(header, bytes.Repeat([]byte{0x00}, 100)...)
}

func TestFileService_Upload_Success_PDF(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	userID := uuid.New()

	file, header := createMultipartFile("estimate.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FileStatusUploaded, result.Status)
	assert.Equal(t, domain.FileTypePDF, result.FileType)
	assert.Equal(t, "estimate.pdf", result.OriginalName)

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_Upload_Success_JPEGPhoto(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()

	file, header := createMultipartFile("rug-front.jpg", jpegContent(), "image/jpeg")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FileTypeJPG, result.FileType)
}

func TestFileService_Upload_Success_PNG(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()

	file, header := createMultipartFile("rug-back.png", pngContent(), "image/png")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.FileTypePNG, result.FileType)
}

func TestFileService_Upload_UnsupportedExtension(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("malware.exe", []byte("MZ fake exe content"), "application/octet-stream")
	defer file.Close()

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   uuid.New(),
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_SpoofedExtension(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	// Extension says JPG but the bytes are plain text.
	file, header := createMultipartFile("photo.jpg", []byte("definitely not an image, just text"), "image/jpeg")
	defer file.Close()

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   uuid.New(),
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_FileTooLarge(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	cfg.MaxFileSizeMB = 1 // 1MB limit
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("large.pdf", pdfContent(), "application/pdf")
	defer file.Close()
	header.Size = 2 * 1024 * 1024 // 2MB

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   uuid.New(),
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileService_Upload_StorageFailure(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	file, header := createMultipartFile("estimate.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, io.ErrUnexpectedEOF)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_GetDownloadURL(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	fileID := uuid.New()
	meta := &domain.FileMeta{
		ID:       fileID,
		TenantID: tenantID,
		S3Bucket: "test-bucket",
		S3Key:    "tenants/test/files/photo.jpg",
	}

	fileRepo.On("GetByID", mock.Anything, tenantID, fileID).Return(meta, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", "tenants/test/files/photo.jpg", int64(3600)).
		Return("https://signed.example.com/photo.jpg", nil)

	url, err := svc.GetDownloadURL(context.Background(), tenantID, fileID)

	assert.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/photo.jpg", url)
}

func TestFileService_Delete_Success(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	fileID := uuid.New()
	meta := &domain.FileMeta{
		ID:       fileID,
		TenantID: tenantID,
		S3Bucket: "test-bucket",
		S3Key:    "tenants/test/files/photo.jpg",
		Status:   domain.FileStatusUploaded,
	}

	fileRepo.On("GetByID", mock.Anything, tenantID, fileID).Return(meta, nil)
	storage.On("Delete", mock.Anything, "test-bucket", "tenants/test/files/photo.jpg").Return(nil)
	fileRepo.On("Delete", mock.Anything, tenantID, fileID).Return(nil)

	err := svc.Delete(context.Background(), tenantID, fileID)

	assert.NoError(t, err)
	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_Delete_NotFound(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	fileID := uuid.New()

	fileRepo.On("GetByID", mock.Anything, tenantID, fileID).Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), tenantID, fileID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileService_Upload_JobScopedPhotoKey(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	jobID := uuid.New()

	file, header := createMultipartFile("rug-front.jpg", jpegContent(), "image/jpeg")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.Contains(in.Key, "jobs/"+jobID.String()+"/photos/")
	})).Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		JobID:      &jobID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.JobID)
	assert.Equal(t, jobID, *result.JobID)
	storage.AssertExpectations(t)
}

func TestFileService_Upload_JobScopedDocumentKey(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	jobID := uuid.New()

	file, header := createMultipartFile("estimate.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.Contains(in.Key, "jobs/"+jobID.String()+"/documents/")
	})).Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	_, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		JobID:      &jobID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestFileService_Upload_UnscopedKeyStaysUnderTenantFiles(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()

	file, header := createMultipartFile("logo.png", pngContent(), "image/png")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.HasPrefix(in.Key, "tenants/"+tenantID.String()+"/files/")
	})).Return(&port.UploadOutput{Location: "https://s3/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, tenantID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	result, err := svc.Upload(context.Background(), service.FileUploadInput{
		TenantID:   tenantID,
		UploadedBy: uuid.New(),
		File:       file,
		Header:     header,
	})

	assert.NoError(t, err)
	assert.Nil(t, result.JobID)
	storage.AssertExpectations(t)
}

func TestFileService_ListByJob(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	tenantID := uuid.New()
	jobID := uuid.New()
	files := []domain.FileMeta{
		{ID: uuid.New(), TenantID: tenantID, JobID: &jobID, FileType: domain.FileTypeJPG},
		{ID: uuid.New(), TenantID: tenantID, JobID: &jobID, FileType: domain.FileTypePDF},
	}

	fileRepo.On("ListByJob", mock.Anything, tenantID, jobID, 0, 20).Return(files, 2, nil)

	got, total, err := svc.ListByJob(context.Background(), tenantID, jobID, 0, 20)

	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)
	fileRepo.AssertExpectations(t)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/templui/habitkit/internal/imageproc"
	"github.com/templui/habitkit/internal/model"
	"github.com/templui/habitkit/internal/repository"
	"github.com/templui/habitkit/internal/storage"
	"github.com/templui/habitkit/internal/validation"
)

type FileService struct {
	fileRepo   repository.FileRepository
	storage    storage.Storage
	avatarOpts imageproc.Options
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage, avatarOpts imageproc.Options) *FileService {
	return &FileService{
		fileRepo:   fileRepo,
		storage:    storage,
		avatarOpts: avatarOpts,
	}
}

// UploadAvatar validates the upload, compresses it to a square JPEG and
// replaces the user's previous avatar.
func (s *FileService) UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader) (*model.File, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	compressed, err := imageproc.Avatar(file, s.avatarOpts)
	if err != nil {
		if errors.Is(err, imageproc.ErrInvalidImage) {
			return nil, invalidf("could not read image")
		}
		return nil, err
	}

	previous, err := s.Avatar(userID)
	if err != nil && !errors.Is(err, repository.ErrFileNotFound) {
		return nil, fmt.Errorf("failed to get current avatar: %w", err)
	}

	filename := uuid.New().String() + ".jpg"
	storagePath := path.Join("public", "avatars", filename)

	err = s.storage.Save(ctx, storagePath, imageproc.ContentType, bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	record := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         model.FileTypeAvatar,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     imageproc.ContentType,
		Size:         int64(len(compressed)),
		StoragePath:  storagePath,
		Public:       true,
		CreatedAt:    time.Now(),
	}

	err = s.fileRepo.Create(record)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	if previous != nil {
		err = s.Delete(ctx, previous.ID)
		if err != nil {
			slog.Warn("failed to delete previous avatar", "error", err, "file_id", previous.ID)
		}
	}

	slog.Info("avatar uploaded", "user_id", userID, "size", record.Size)
	return record, nil
}

func (s *FileService) Avatar(userID string) (*model.File, error) {
	return s.fileRepo.Latest(userID, model.FileTypeAvatar)
}

// URL returns the URL clients fetch the file from.
func (s *FileService) URL(file *model.File) string {
	if file == nil {
		return ""
	}

	s3Storage, ok := s.storage.(*storage.S3Storage)
	if ok && !file.Public {
		url, err := s3Storage.PrivateURL(file.StoragePath)
		if err == nil {
			return url
		}
		slog.Warn("failed to presign private file", "error", err, "file_id", file.ID)
	}

	return s.storage.URL(file.StoragePath)
}

// Delete removes a file from storage and database
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.ByID(fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	// storage first, best effort
	delErr := s.storage.Delete(ctx, file.StoragePath)
	if delErr != nil {
		slog.Warn("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

func (s *FileService) DeleteUserAvatar(ctx context.Context, userID string) error {
	file, err := s.Avatar(userID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil
		}
		return err
	}

	return s.Delete(ctx, file.ID)
}

// DeleteAllUserFilesFromStorage removes stored objects; rows go with the user cascade.
func (s *FileService) DeleteAllUserFilesFromStorage(ctx context.Context, userID string) error {
	files, err := s.fileRepo.ByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		err = s.storage.Delete(ctx, file.StoragePath)
		if err != nil {
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}

	return nil
}

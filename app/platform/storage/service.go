package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/s3/v2"

	"accounthub/pkg/utils"
)

// StorageService defines methods for blob storage operations
type StorageService interface {
	// SaveFile saves a file to the storage
	SaveFile(file *multipart.FileHeader, path string, c *fiber.Ctx) error

	// DeleteFile removes a stored blob; unknown keys are not an error
	DeleteFile(path string) error

	// IsFileExtensionAllowed checks if file extension is allowed
	IsFileExtensionAllowed(filename string) bool

	// GenerateKeyName generates a random key name for file storage
	GenerateKeyName(filename string) string
}

type storageService struct {
	storage *s3.Storage
}

// NewStorageService creates a new StorageService
func NewStorageService(storage *s3.Storage) StorageService {
	return &storageService{
		storage: storage,
	}
}

func (s *storageService) SaveFile(file *multipart.FileHeader, path string, c *fiber.Ctx) error {
	return c.SaveFileToStorage(file, path, s.storage)
}

func (s *storageService) DeleteFile(path string) error {
	return s.storage.Delete(path)
}

func (s *storageService) IsFileExtensionAllowed(filename string) bool {
	allowedExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *storageService) GenerateKeyName(filename string) string {
	key := strings.ToLower(utils.GenerateRandomString(16))
	return fmt.Sprintf("profile-pictures/%s%s", key, strings.ToLower(filepath.Ext(filename)))
}

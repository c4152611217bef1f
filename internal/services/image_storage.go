package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStorageService stores uploaded card images on disk.
type ImageStorageService struct {
	storageDir string
}

func NewImageStorageService(storageDir string) *ImageStorageService {
	if storageDir == "" {
		storageDir = "./data/card_images"
	}

	// Ensure the storage directory exists
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		fmt.Printf("Warning: could not create card images directory: %v\n", err)
	}

	return &ImageStorageService{
		storageDir: storageDir,
	}
}

// SaveImage writes image data to disk and returns the generated filename.
func (s *ImageStorageService) SaveImage(imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	filename := uuid.New().String() + ".jpg"
	filePath := filepath.Join(s.storageDir, filename)

	if err := os.WriteFile(filePath, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return filename, nil
}

// DeleteImage removes a stored image. Missing files are not an error.
func (s *ImageStorageService) DeleteImage(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.storageDir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetStorageDir returns the directory images are served from.
func (s *ImageStorageService) GetStorageDir() string {
	return s.storageDir
}

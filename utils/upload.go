package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SaveUploadedFile writes a multipart upload into uploadLocation under a
// uuid-prefixed filename and returns the stored path. The file is written
// before any database row references it; callers that fail afterwards
// should call RemoveUploadedFile to avoid orphans.
func SaveUploadedFile(c *fiber.Ctx, file *multipart.FileHeader, uploadLocation string) (string, error) {
	if err := os.MkdirAll(uploadLocation, 0o755); err != nil {
		return "", err
	}

	fileName := uuid.NewString() + "_" + filepath.Base(file.Filename)
	filePath := filepath.Join(uploadLocation, fileName)

	if err := c.SaveFile(file, filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

func RemoveUploadedFile(filePath string) {
	if filePath != "" {
		os.Remove(filePath)
	}
}

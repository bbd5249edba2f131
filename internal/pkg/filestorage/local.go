package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory when missing.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// UniqueName builds "<base>_<suffix>" plus the extension of base, where
// suffix is the first eight characters of a random UUID.
func UniqueName(base, ext string) string {
	base = strings.ReplaceAll(strings.TrimSpace(base), " ", "_")
	return base + "_" + uuid.New().String()[:8] + ext
}

// SaveBytes writes data to name inside the base directory and returns the
// path it was written to. Existing files are never overwritten.
func (ls *LocalStorage) SaveBytes(name string, data []byte) (string, error) {
	filename := filepath.Base(name)
	if filename == "" || filename == "." || filename == "/" {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := dst.Write(data); err != nil {
		dst.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	logger.Info().Str("path", dstPath).Int("bytes", len(data)).Msg("File saved successfully")
	return dstPath, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil // Nothing to delete
	}

	physicalPath := ls.GetFullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a stored file.
func (ls *LocalStorage) GetFullPath(filePath string) string {
	filename := filepath.Base(filePath)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}

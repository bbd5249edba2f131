package filestorage

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveBytes writes data under name and returns the stored path
	SaveBytes(name string, data []byte) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a stored file
	GetFullPath(filePath string) string
}

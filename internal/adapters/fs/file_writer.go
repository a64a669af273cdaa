package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// FileWriterAdapter writes the files created by `init`
type FileWriterAdapter struct{}

// NewFileWriterAdapter creates a new file writer adapter
func NewFileWriterAdapter() *FileWriterAdapter {
	return &FileWriterAdapter{}
}

// WriteFile writes content to path, creating parent directories as needed
func (f *FileWriterAdapter) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FileExists checks if a file exists
func (f *FileWriterAdapter) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// EnsureDirectory ensures a directory exists
func (f *FileWriterAdapter) EnsureDirectory(ctx context.Context, path string) error {
	return os.MkdirAll(path, 0755)
}

// Ensure the adapter implements the interface
var _ usecase.FileWriter = (*FileWriterAdapter)(nil)

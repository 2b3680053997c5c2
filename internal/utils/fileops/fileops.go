package fileops

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileOps provides a unified interface for the file operations the emitter
// and the cleaner need, combining path validation and error wrapping
type FileOps struct {
	pathValidator *PathValidator
	errorWrapper  *ErrorWrapper
}

// NewFileOps creates a new FileOps instance with all components
func NewFileOps() *FileOps {
	return &FileOps{
		pathValidator: NewPathValidator(),
		errorWrapper:  NewErrorWrapper(),
	}
}

// PathValidator returns the path validator instance
func (fo *FileOps) PathValidator() *PathValidator {
	return fo.pathValidator
}

// EnsureDir creates a directory and its parents when missing
func (fo *FileOps) EnsureDir(dirPath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(dirPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cleanPath, 0o755); err != nil {
		return fo.errorWrapper.WrapDirectoryCreateError(cleanPath, err)
	}
	return nil
}

// ReadFile reads a file and returns its contents
func (fo *FileOps) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fo.errorWrapper.WrapFileReadError(cleanPath, err)
	}
	return content, nil
}

// WriteFile replaces a file's content, creating parent directories as needed
func (fo *FileOps) WriteFile(filePath string, content []byte) error {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return err
	}
	if err := fo.EnsureDir(filepath.Dir(cleanPath)); err != nil {
		return err
	}
	if err := os.WriteFile(cleanPath, content, 0o644); err != nil {
		return fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return nil
}

// CreateIfAbsent writes content only when filePath does not exist yet. An
// existing file is never opened for writing. The bool reports whether the
// file was created by this call.
func (fo *FileOps) CreateIfAbsent(filePath string, content []byte) (bool, error) {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return false, err
	}
	if err := fo.EnsureDir(filepath.Dir(cleanPath)); err != nil {
		return false, err
	}

	f, err := os.OpenFile(cleanPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fo.errorWrapper.WrapFileCreateError(cleanPath, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return true, fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	if err := f.Close(); err != nil {
		return true, fo.errorWrapper.WrapFileWriteError(cleanPath, err)
	}
	return true, nil
}

// StartsWith reports whether the file at filePath begins with prefix. A
// missing or shorter file does not.
func (fo *FileOps) StartsWith(filePath string, prefix []byte) (bool, error) {
	cleanPath, err := fo.pathValidator.ValidateAndCleanOptional(filePath)
	if err != nil {
		return false, err
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fo.errorWrapper.WrapFileCheckError(cleanPath, err)
	}
	defer f.Close()

	head := make([]byte, len(prefix))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fo.errorWrapper.WrapFileCheckError(cleanPath, err)
	}
	return bytes.Equal(head, prefix), nil
}

// RemoveFile removes a file with path validation and error handling
func (fo *FileOps) RemoveFile(filePath string) error {
	cleanPath, err := fo.pathValidator.ValidateAndClean(filePath)
	if err != nil {
		return err
	}

	if err := os.Remove(cleanPath); err != nil {
		return fo.errorWrapper.WrapFileRemovalError(cleanPath, err)
	}
	return nil
}

// Exists checks if a path exists using the path validator
func (fo *FileOps) Exists(path string) bool {
	return fo.pathValidator.Exists(path)
}

// IsDir checks if a path is a directory using the path validator
func (fo *FileOps) IsDir(path string) bool {
	return fo.pathValidator.IsDir(path)
}

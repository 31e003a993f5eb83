package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator checks upload names and report file paths for both the
// HTTP surface and the one-shot CLI.
type FileValidator struct {
	logger            *slog.Logger
	allowedExtensions []string
	maxSizeBytes      int64
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger, allowedExtensions []string, maxSizeBytes int64) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{".csv", ".xlsx"}
	}
	return &FileValidator{
		logger:            logger,
		allowedExtensions: allowedExtensions,
		maxSizeBytes:      maxSizeBytes,
	}
}

// ValidateUploadName checks an uploaded filename for a supported extension
// and rejects path traversal attempts.
func (v *FileValidator) ValidateUploadName(name string) error {
	if name == "" {
		return fmt.Errorf("filename is empty")
	}

	base := filepath.Base(name)
	if strings.Contains(name, "..") || base != name {
		v.logger.Warn("Rejected upload filename",
			slog.String("filename", name))
		return fmt.Errorf("filename %s contains path separators", name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range v.allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	v.logger.Warn("Rejected upload extension",
		slog.String("filename", name),
		slog.String("extension", ext))
	return fmt.Errorf("file %s has unsupported extension %s (allowed: %s)",
		name, ext, strings.Join(v.allowedExtensions, ", "))
}

// ValidateUploadSize checks a declared upload size against the configured cap.
// A size of -1 (unknown length) is allowed; the body reader enforces the cap.
func (v *FileValidator) ValidateUploadSize(size int64) error {
	if v.maxSizeBytes > 0 && size > v.maxSizeBytes {
		v.logger.Warn("Rejected oversized upload",
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSizeBytes))
		return fmt.Errorf("upload of %d bytes exceeds limit of %d bytes", size, v.maxSizeBytes)
	}
	return nil
}

// ValidateInputFile checks that a CLI input file exists, is readable, and
// carries a supported extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist",
			slog.String("file", path))
		return fmt.Errorf("file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if err := v.ValidateUploadSize(info.Size()); err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	allowed := false
	for _, a := range v.allowedExtensions {
		if ext == strings.ToLower(a) {
			allowed = true
			break
		}
	}
	if !allowed {
		v.logger.Error("Input file has unsupported extension",
			slog.String("file", path),
			slog.String("extension", ext))
		return fmt.Errorf("file %s has unsupported extension %s", path, ext)
	}

	// Excel leaves ~$ lock files next to open workbooks.
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("file %s is a temporary Excel file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures the reports directory exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	return nil
}

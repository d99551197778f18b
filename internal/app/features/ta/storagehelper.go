// internal/app/features/ta/storagehelper.go
package ta

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dalemusser/noteboard/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// maxAttachments caps the number of files on a single answer.
const maxAttachments = 5

// uploadAttachment stores one answer attachment under a unique path and
// returns its metadata. The path is generated as:
// answers/YYYY/MM/uuid-filename
func uploadAttachment(ctx context.Context, store storage.Store, originalName string, reader io.Reader, size int64, contentType string) (models.Attachment, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("answers/%04d/%02d", now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(originalName))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := store.Put(ctx, path, reader, opts); err != nil {
		return models.Attachment{}, fmt.Errorf("failed to store attachment: %w", err)
	}

	return models.Attachment{
		Filename:     uniqueName,
		OriginalName: originalName,
		Path:         path,
		Size:         size,
	}, nil
}

// sanitizeFilename removes or replaces characters that could be
// problematic in filenames.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve extension if present
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

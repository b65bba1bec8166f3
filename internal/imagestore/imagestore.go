// Package imagestore persists uploaded book cover images.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"bookcatalog/internal/platform/apperr"

	"github.com/google/uuid"
)

var (
	ErrTooLarge        = apperr.New(apperr.ErrInvalidArgument, "File too large")
	ErrUnsupportedType = apperr.New(apperr.ErrInvalidArgument, "Only image files are allowed")
)

// allowedTypes maps sniffed content types to the extension used when the
// client supplied none.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store saves an image under name and returns the public URL for it.
type Store interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// NewName returns a collision-free file name of the form <unix-millis>-<uuid><ext>.
func NewName(now time.Time, originalName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 8 {
		ext = allowedTypes[contentType]
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext)
}

func joinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}

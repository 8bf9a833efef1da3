// Package photos resolves submission photo references to image payloads.
package photos

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tradecheck/tradecheck/internal/adapters/outbound/httpapi"
	"github.com/tradecheck/tradecheck/internal/domain"
)

// maxPhotoBytes caps a downloaded photo at 20 MiB.
const maxPhotoBytes = 20 << 20

// Source implements domain.PhotoSource. http(s) references are downloaded and
// inlined, gs:// references stay URL photos for the vision model to read, and
// anything else is read from disk relative to baseDir.
type Source struct {
	baseDir string
	client  *http.Client
}

func New(baseDir string, timeout time.Duration) *Source {
	return &Source{baseDir: baseDir, client: &http.Client{Timeout: timeout}}
}

func (s *Source) Load(ctx context.Context, ref string) (domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Photo{}, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Photo{}, fmt.Errorf("loading photo: empty reference")
	}
	if strings.HasPrefix(ref, "gs://") {
		return domain.URLPhoto(ref), nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return s.download(ctx, ref)
	}

	path := ref
	if s.baseDir != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(s.baseDir, ref)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("loading photo %s: %w", ref, err)
	}
	if len(data) == 0 {
		return domain.Photo{}, fmt.Errorf("loading photo %s: empty file", ref)
	}
	return domain.InlinePhoto(data, MediaTypeFor(ref)), nil
}

func (s *Source) download(ctx context.Context, ref string) (domain.Photo, error) {
	data, contentType, err := httpapi.GetBytes(ctx, s.client, ref, maxPhotoBytes)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("downloading photo: %w", err)
	}
	if len(data) == 0 {
		return domain.Photo{}, fmt.Errorf("downloading photo: empty body")
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = MediaTypeFor(strings.SplitN(ref, "?", 2)[0])
	}
	return domain.InlinePhoto(data, mediaType), nil
}

// MediaTypeFor picks the image media type from the file extension, defaulting
// to image/jpeg.
func MediaTypeFor(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return domain.DefaultMediaType
	}
}

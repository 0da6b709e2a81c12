package mediaservice

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/arvanweb/sitecms/internal/common"
)

var ErrEmptyUpload = errors.New("empty upload")

type MediaService struct {
	storage Storage
	logger  *slog.Logger
}

func NewMediaService(storage Storage, logger *slog.Logger) *MediaService {
	return &MediaService{storage: storage, logger: logger}
}

// Upload is the stored result of an accepted file.
type Upload struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`
}

// objectKey builds a collision-free key that keeps the original extension for
// content negotiation. The base name is slugified so URLs stay readable.
func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := common.Slugify(strings.TrimSuffix(path.Base(filename), ext))
	if base == "" {
		base = "file"
	}

	return base + "-" + uuid.NewString() + ext
}

// Store downscales oversized images, probes dimensions and writes the object.
// Non-image payloads are stored as-is with nil dimensions.
func (s *MediaService) Store(ctx context.Context, filename, contentType string, data []byte) (*Upload, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	data, probe, err := downscale(data)
	if err != nil {
		return nil, err
	}
	if probe.Width == nil {
		probe = probeImage(data)
	}

	key := objectKey(filename)
	if err := s.storage.Put(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	s.logger.Info("media stored", slog.String("key", key), slog.Int("bytes", len(data)))

	return &Upload{
		Key:      key,
		URL:      s.storage.URL(key),
		MimeType: contentType,
		FileSize: int64(len(data)),
		Width:    probe.Width,
		Height:   probe.Height,
	}, nil
}

// Delete removes the object behind a previously returned URL. Unknown URLs
// are ignored so metadata cleanup never blocks on a missing object.
func (s *MediaService) Delete(ctx context.Context, url string) error {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return nil
	}

	key := url[idx+1:]
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.Error("could not remove object", slog.String("key", key), slog.String("error", err.Error()))
		return err
	}

	return nil
}

package mediaservice

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) EnsureBucket(ctx context.Context) error { return nil }

func (m *memoryStorage) Put(ctx context.Context, key, contentType string, data []byte) error {
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) Remove(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStorage) URL(key string) string {
	return "http://storage.local/media/" + key
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupTestService() (*MediaService, *memoryStorage) {
	storage := newMemoryStorage()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return NewMediaService(storage, logger), storage
}

func TestProbeImage(t *testing.T) {
	t.Run("decodable image reports dimensions", func(t *testing.T) {
		probe := probeImage(pngBytes(t, 120, 80))

		require.NotNil(t, probe.Width)
		require.NotNil(t, probe.Height)
		assert.Equal(t, 120, *probe.Width)
		assert.Equal(t, 80, *probe.Height)
	})

	t.Run("non-image payload yields nil dimensions", func(t *testing.T) {
		probe := probeImage([]byte("not an image at all"))

		assert.Nil(t, probe.Width)
		assert.Nil(t, probe.Height)
	})
}

func TestDownscale(t *testing.T) {
	t.Run("small image passes through", func(t *testing.T) {
		original := pngBytes(t, 400, 300)

		data, probe, err := downscale(original)
		require.NoError(t, err)

		assert.Equal(t, original, data)
		assert.Equal(t, 400, *probe.Width)
		assert.Equal(t, 300, *probe.Height)
	})

	t.Run("wide image is resized proportionally", func(t *testing.T) {
		original := pngBytes(t, 3200, 1600)

		data, probe, err := downscale(original)
		require.NoError(t, err)
		require.NotEqual(t, original, data)

		assert.Equal(t, maxImageWidth, *probe.Width)
		assert.Equal(t, 800, *probe.Height)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, maxImageWidth, cfg.Width)
	})

	t.Run("non-image payload passes through", func(t *testing.T) {
		payload := []byte("%PDF-1.4 fake document")

		data, probe, err := downscale(payload)
		require.NoError(t, err)

		assert.Equal(t, payload, data)
		assert.Nil(t, probe.Width)
	})
}

func TestObjectKey(t *testing.T) {
	key := objectKey("My Holiday Photo.PNG")

	assert.True(t, strings.HasPrefix(key, "my-holiday-photo-"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	// keys must not collide for the same filename
	assert.NotEqual(t, key, objectKey("My Holiday Photo.PNG"))
}

func TestStore(t *testing.T) {
	s, storage := setupTestService()
	ctx := context.Background()

	t.Run("image upload", func(t *testing.T) {
		upload, err := s.Store(ctx, "banner.png", "image/png", pngBytes(t, 200, 100))
		require.NoError(t, err)

		assert.Equal(t, 200, *upload.Width)
		assert.Equal(t, 100, *upload.Height)
		assert.True(t, strings.HasPrefix(upload.URL, "http://storage.local/media/"))

		_, ok := storage.objects[upload.Key]
		assert.True(t, ok)
	})

	t.Run("opaque file upload", func(t *testing.T) {
		upload, err := s.Store(ctx, "contract.pdf", "application/pdf", []byte("%PDF-1.4"))
		require.NoError(t, err)

		assert.Nil(t, upload.Width)
		assert.Nil(t, upload.Height)
		assert.Equal(t, int64(8), upload.FileSize)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := s.Store(ctx, "empty.bin", "application/octet-stream", nil)
		assert.Equal(t, ErrEmptyUpload, err)
	})
}

func TestDelete(t *testing.T) {
	s, storage := setupTestService()
	ctx := context.Background()

	upload, err := s.Store(ctx, "to-delete.png", "image/png", pngBytes(t, 10, 10))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, upload.URL))

	_, ok := storage.objects[upload.Key]
	assert.False(t, ok)

	// malformed URLs are ignored
	assert.NoError(t, s.Delete(ctx, ""))
}

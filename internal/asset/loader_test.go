package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadImage_FromDir(t *testing.T) {
	fsys := fstest.MapFS{
		"img/sheet.png": {Data: pngBytes(t, 4, 2)},
	}
	l := NewLoader(context.Background(), DirFetcher{FS: fsys})

	p := LoadImage(l, "/img/sheet.png")
	l.Wait()

	img, ok := p.Value()
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Empty(t, l.Failures())
}

func TestLoader_FailureIsRecoverable(t *testing.T) {
	var mu sync.Mutex
	var reported []string

	l := NewLoader(context.Background(), DirFetcher{FS: fstest.MapFS{
		"bad.png": {Data: []byte("not an image")},
	}}, OnError(func(f Failure) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, f.URL)
	}))

	missing := LoadImage(l, "missing.png")
	corrupt := LoadImage(l, "bad.png")
	l.Wait()

	assert.True(t, missing.Failed())
	assert.ErrorIs(t, missing.Err(), fs.ErrNotExist)
	assert.True(t, corrupt.Failed())
	assert.Contains(t, corrupt.Err().Error(), `decode "bad.png"`)

	mu.Lock()
	assert.ElementsMatch(t, []string{"missing.png", "bad.png"}, reported)
	mu.Unlock()
	assert.Len(t, l.Failures(), 2)
}

func TestLoader_PanicSettlesAsFailure(t *testing.T) {
	l := NewLoader(context.Background(), FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
		if url == "boom" {
			panic("fetcher exploded")
		}
		return []byte("ok"), nil
	}))

	fetchPanic := Start(l, "boom", func(b []byte) (string, error) { return string(b), nil })
	decodePanic := Start(l, "fine", func([]byte) (string, error) { panic("decoder exploded") })
	l.Wait()

	assert.True(t, fetchPanic.Failed())
	assert.Contains(t, fetchPanic.Err().Error(), "fetcher exploded")
	assert.True(t, decodePanic.Failed())
	assert.Contains(t, decodePanic.Err().Error(), "decoder exploded")

	failed := make([]string, 0, 2)
	for _, f := range l.Failures() {
		failed = append(failed, f.URL)
	}
	assert.ElementsMatch(t, []string{"boom", "fine"}, failed)
}

func TestStart_ReturnsBeforeFetchCompletes(t *testing.T) {
	release := make(chan struct{})
	l := NewLoader(context.Background(), FetcherFunc(func(context.Context, string) ([]byte, error) {
		<-release
		return []byte("abc"), nil
	}))

	p := Start(l, "slow", func(b []byte) (int, error) { return len(b), nil })
	assert.False(t, p.Ready(), "load must not block the caller")

	close(release)
	l.Wait()
	v, ok := p.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example.com/a.png", true},
		{"http://localhost:8080/a.ogg", true},
		{"/assets/a.png", false},
		{"assets/a.png", false},
		{"file:///tmp/a.png", false},
		{"https://", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.url))
		})
	}
}

func TestRouter(t *testing.T) {
	local := FetcherFunc(func(_ context.Context, u string) ([]byte, error) { return []byte("local:" + u), nil })
	remote := FetcherFunc(func(_ context.Context, u string) ([]byte, error) { return []byte("remote:" + u), nil })
	r := Router{Local: local, Remote: remote}

	b, err := r.Fetch(context.Background(), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "local:a.png", string(b))

	b, err = r.Fetch(context.Background(), "https://x.test/a.png")
	require.NoError(t, err)
	assert.Equal(t, "remote:https://x.test/a.png", string(b))

	_, err = Router{Local: local}.Fetch(context.Background(), "https://x.test/a.png")
	assert.Error(t, err)
}

func TestDecodeImage_Error(t *testing.T) {
	_, err := DecodeImage([]byte{0x00, 0x01})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}

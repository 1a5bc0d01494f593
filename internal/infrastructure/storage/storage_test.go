package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdugdh24/cofounders-backend/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), "avatars/a.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/a.png", key)

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, s.Delete(context.Background(), key))
	_, err = os.Stat(filepath.Join(dir, "avatars", "a.png"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(context.Background(), key))
}

func TestLocalStorage_KeyStaysInBase(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "base"))
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", key)
	_, err = os.Stat(filepath.Join(dir, "base", "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Upload(context.Background(), "", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewStorage(t *testing.T) {
	s, err := NewStorage(context.Background(), config.StorageConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = NewStorage(context.Background(), config.StorageConfig{Type: "local", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	_, err = NewStorage(context.Background(), config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}

func TestAvatarMirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pic.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte("jpegdata"))
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	local, err := NewLocalStorage(dir)
	require.NoError(t, err)
	mirror := NewAvatarMirror(local, "/static/uploads/", []string{"127.0.0.1"})
	id := uuid.New()

	url, err := mirror.Mirror(context.Background(), id, srv.URL+"/pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/avatars/"+id.String()+".jpg", url)
	data, err := os.ReadFile(filepath.Join(dir, "avatars", id.String()+".jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))

	same, err := mirror.Mirror(context.Background(), id, url)
	require.NoError(t, err)
	assert.Equal(t, url, same)

	_, err = mirror.Mirror(context.Background(), id, srv.URL+"/page")
	assert.ErrorContains(t, err, "unsupported avatar content type")

	_, err = mirror.Mirror(context.Background(), id, srv.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}

func TestAvatarMirror_RejectsUnlistedHosts(t *testing.T) {
	hits := 0
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("secret"))
	}))
	defer internal.Close()

	dir := t.TempDir()
	local, err := NewLocalStorage(dir)
	require.NoError(t, err)
	mirror := NewAvatarMirror(local, "/static/uploads", []string{"licdn.com"})
	id := uuid.New()

	for _, source := range []string{
		internal.URL + "/latest/meta-data/iam",
		"http://169.254.169.254/latest/meta-data/",
		"file:///etc/passwd",
		"https://media.licdn.com.evil.test/pic.jpg",
	} {
		_, err := mirror.Mirror(context.Background(), id, source)
		assert.ErrorContains(t, err, "not allowed", source)
	}
	assert.Zero(t, hits)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAvatarMirror_HostMatching(t *testing.T) {
	mirror := NewAvatarMirror(nil, "", []string{"licdn.com"})
	for _, ok := range []string{"https://licdn.com/a.jpg", "https://media.licdn.com/a.jpg", "https://MEDIA.LICDN.COM/a.jpg"} {
		u, err := url.Parse(ok)
		require.NoError(t, err)
		assert.NoError(t, mirror.checkHost(u), ok)
	}
	for _, bad := range []string{"https://notlicdn.com/a.jpg", "https://licdn.com.evil.test/a.jpg", "ftp://licdn.com/a.jpg"} {
		u, err := url.Parse(bad)
		require.NoError(t, err)
		assert.Error(t, mirror.checkHost(u), bad)
	}
}

package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadStream(t *testing.T) {
	var gotAuth, gotContentType, gotBody, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	url, err := client.UploadStream(context.Background(), "course-videos", "videos/1_intro.mp4",
		strings.NewReader("video-bytes"), "video/mp4")
	require.NoError(t, err)

	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "video/mp4", gotContentType)
	assert.Equal(t, "video-bytes", gotBody)
	assert.Equal(t, "/storage/v1/object/course-videos/videos/1_intro.mp4", gotPath)
	assert.Equal(t, server.URL+"/storage/v1/object/public/course-videos/videos/1_intro.mp4", url)
}

func TestUploadStream_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	_, err := client.UploadStream(context.Background(), "missing", "x", strings.NewReader(""), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
}

func TestUploadStream_NotConfigured(t *testing.T) {
	client := NewClient("", "")
	assert.False(t, client.Enabled())

	_, err := client.UploadStream(context.Background(), "b", "p", strings.NewReader(""), "")
	assert.Error(t, err)
}

func TestDeleteObject(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "service-key")
	require.NoError(t, client.DeleteObject(context.Background(), "course-videos", "videos/1_intro.mp4"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestObjectPath(t *testing.T) {
	path := ObjectPath("thumbnails", "cover.png")
	assert.True(t, strings.HasPrefix(path, "thumbnails/"))
	assert.True(t, strings.HasSuffix(path, "_cover.png"))
}

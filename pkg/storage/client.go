package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client handles hosted object-storage operations (Supabase Storage REST API).
// Buckets hold course videos, thumbnails and AI tool images; the server only
// uploads and deletes objects, playback is served from the public CDN URL.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a new storage client.
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Enabled reports whether the client has credentials configured.
func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.serviceKey != ""
}

// UploadStream uploads an object from an io.Reader and returns its public URL.
func (c *Client) UploadStream(ctx context.Context, bucket, objectPath string, reader io.Reader, contentType string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("storage client not configured")
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return c.PublicURL(bucket, objectPath), nil
}

// DeleteObject removes an object from a bucket.
func (c *Client) DeleteObject(ctx context.Context, bucket, objectPath string) error {
	if !c.Enabled() {
		return fmt.Errorf("storage client not configured")
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, bucket, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// PublicURL builds the public CDN URL for an object.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, objectPath)
}

// ObjectPath builds a time-prefixed object path matching the legacy layout
// (videos/<ts>_<name>, thumbnails/<ts>_<name>, images/<ts>_<name>).
func ObjectPath(folder, filename string) string {
	return fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixMilli(), filename)
}

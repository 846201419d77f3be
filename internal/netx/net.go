// Package netx uploads blobs to presigned object-storage URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultContentType is used when the caller does not know the media type.
const DefaultContentType = "application/octet-stream"

// Uploader PUTs a body to a presigned URL.
type Uploader struct {
	HTTP *http.Client
}

func NewUploader(c *http.Client) *Uploader {
	if c == nil {
		c = http.DefaultClient
	}
	return &Uploader{HTTP: c}
}

// Put uploads body to url. Any non-2xx status is an error carrying the
// response body for diagnostics.
func (u *Uploader) Put(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := u.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

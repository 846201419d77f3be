// Package filex reads user-selected media files and stores local copies.
package filex

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
)

// EnsureDir creates dir (relative paths resolve against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// Upload is a file read into memory for upload.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadUpload reads path, rejecting files larger than maxBytes with
// common.ErrValidation before any bytes are loaded.
func ReadUpload(path string, maxBytes int64) (*Upload, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, common.ErrValidation)
	}
	if maxBytes > 0 && fi.Size() > maxBytes {
		return nil, fmt.Errorf("file is %d bytes, limit is %d: %w", fi.Size(), maxBytes, common.ErrValidation)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Upload{
		Name:        filepath.Base(path),
		ContentType: contentType(path, data),
		Data:        data,
	}, nil
}

func contentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// StoreLocal writes data under dir as name and returns a file:// URL for it.
func StoreLocal(dir, name string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	p := filepath.Join(abs, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String(), nil
}

// RemoveLocal deletes the file behind a file:// URL. Other URLs are ignored.
func RemoveLocal(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" {
		return nil
	}
	if err := os.Remove(filepath.FromSlash(u.Path)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

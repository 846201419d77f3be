package mutations

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/client"
	"github.com/saketh1999/consistency-cal-sub000/internal/client/persistence"
	"github.com/saketh1999/consistency-cal-sub000/internal/filex"
	"github.com/saketh1999/consistency-cal-sub000/internal/netx"
)

// Media stores an uploaded file and returns the URL to reference it by.
type Media interface {
	Store(ctx context.Context, up *filex.Upload) (url, storageKey string, err error)
}

// RemoteMedia uploads to object storage through a presigned URL.
type RemoteMedia struct {
	api      client.Client
	uploader *netx.Uploader
}

func NewRemoteMedia(api client.Client, uploader *netx.Uploader) *RemoteMedia {
	return &RemoteMedia{api: api, uploader: uploader}
}

func (m *RemoteMedia) Store(ctx context.Context, up *filex.Upload) (string, string, error) {
	target, err := m.api.PresignUpload(ctx, up.Name, up.ContentType, int64(len(up.Data)))
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	if err := m.uploader.Put(ctx, target.UploadURL, up.ContentType, up.Data); err != nil {
		return "", "", fmt.Errorf("upload %s: %w", up.Name, err)
	}
	return target.PublicURL, target.StorageKey, nil
}

// LocalMedia copies files into a directory and references them by file URL.
type LocalMedia struct {
	dir string
}

func NewLocalMedia(dir string) *LocalMedia {
	return &LocalMedia{dir: dir}
}

func (m *LocalMedia) Store(_ context.Context, up *filex.Upload) (string, string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(up.Name))
	url, err := filex.StoreLocal(m.dir, name, up.Data)
	if err != nil {
		return "", "", err
	}
	return url, "", nil
}

// SwitchMedia picks remote or local storage per call.
type SwitchMedia struct {
	local  Media
	remote Media
	auth   persistence.AuthState
}

func NewSwitchMedia(local, remote Media, auth persistence.AuthState) *SwitchMedia {
	return &SwitchMedia{local: local, remote: remote, auth: auth}
}

func (s *SwitchMedia) Store(ctx context.Context, up *filex.Upload) (string, string, error) {
	if s.auth.Authenticated() {
		return s.remote.Store(ctx, up)
	}
	return s.local.Store(ctx, up)
}

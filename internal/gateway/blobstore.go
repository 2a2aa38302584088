package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore uploads binary objects (avatars) and returns a public URL.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
}

// DiskBlobStore writes blobs under a local directory and serves them from
// baseURL. Stands in for hosted object storage in dev and tests.
type DiskBlobStore struct {
	root    string
	baseURL string
}

func NewDiskBlobStore(root, baseURL string) *DiskBlobStore {
	return &DiskBlobStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskBlobStore) Upload(_ context.Context, bucket, path string, data []byte, _ string) (string, error) {
	clean := filepath.Clean(path)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid blob path %q", path)
	}
	dir := filepath.Join(s.root, bucket, filepath.Dir(clean))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	full := filepath.Join(s.root, bucket, clean)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + bucket + "/" + filepath.ToSlash(clean), nil
}

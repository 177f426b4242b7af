package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore keeps blobs on the local filesystem under root/{bucket}/{name}
// and serves them through the router's /media/ handler. It is the default
// backend for single-instance deployments.
type FSStore struct {
	root    string
	baseURL string // e.g. "/media" or "https://host/media"
}

func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Root returns the directory the router should serve under /media/.
func (s *FSStore) Root() string {
	return s.root
}

func (s *FSStore) Upload(_ context.Context, bucket, name string, _ string, body io.Reader) (string, error) {
	path, err := s.localPath(bucket, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create bucket dir: %w", err)
	}
	f, err := os.Create(path) // overwrite on conflict
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return s.baseURL + "/" + bucket + "/" + name, nil
}

func (s *FSStore) PublicURL(bucket, path string) (string, error) {
	if err := validName(path); err != nil {
		return "", err
	}
	return s.baseURL + "/" + bucket + "/" + path, nil
}

func (s *FSStore) Delete(_ context.Context, bucket, path string) error {
	local, err := s.localPath(bucket, path)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *FSStore) localPath(bucket, name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, bucket, filepath.FromSlash(name)), nil
}

// validName rejects traversal outside the bucket directory.
func validName(name string) error {
	if name == "" || strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("invalid blob name %q", name)
	}
	return nil
}

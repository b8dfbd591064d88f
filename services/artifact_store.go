package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Paper artifacts are PDF only and capped at 10MB.
const (
	MaxArtifactSize = int64(10 * 1024 * 1024)
	pdfContentType  = "application/pdf"
)

// ArtifactRef is the stable reference to a stored artifact. URL is the
// caller-facing address; StoredPath is where the blob lives on disk.
type ArtifactRef struct {
	URL        string `json:"url"`
	StoredPath string `json:"-"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
}

// ArtifactStore stores and deletes uploaded paper artifacts. It holds no
// business logic; the workflow layer decides when blobs are created and
// removed.
type ArtifactStore interface {
	Put(r io.Reader, originalName, contentType string, size int64) (*ArtifactRef, error)
	Delete(url string) error
}

// DiskArtifactStore keeps artifacts under a root directory and addresses
// them as urlPrefix/<stored name>.
type DiskArtifactStore struct {
	root      string
	urlPrefix string
}

// NewDiskArtifactStore creates the storage directory if needed.
func NewDiskArtifactStore(root, urlPrefix string) (*DiskArtifactStore, error) {
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return nil, externalErr("artifact-store", err)
	}
	return &DiskArtifactStore{
		root:      root,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Put validates size and content type, then writes the blob under a unique
// stored name so repeated uploads never collide.
func (s *DiskArtifactStore) Put(r io.Reader, originalName, contentType string, size int64) (*ArtifactRef, error) {
	if size > MaxArtifactSize {
		return nil, fmt.Errorf("%w: file size exceeds 10MB limit", ErrInvalidState)
	}
	if contentType != pdfContentType {
		return nil, fmt.Errorf("%w: only PDF artifacts are accepted", ErrInvalidState)
	}

	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".pdf"
	}
	storedName := uuid.NewString() + ext
	storedPath := filepath.Join(s.root, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, externalErr("artifact-store", err)
	}

	written, err := io.Copy(dst, io.LimitReader(r, MaxArtifactSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > MaxArtifactSize {
		err = fmt.Errorf("artifact larger than declared size")
	}
	if err != nil {
		os.Remove(storedPath)
		return nil, externalErr("artifact-store", err)
	}

	return &ArtifactRef{
		URL:        s.urlPrefix + "/" + storedName,
		StoredPath: storedPath,
		Filename:   originalName,
		Size:       written,
	}, nil
}

// Delete removes the blob addressed by url.
func (s *DiskArtifactStore) Delete(url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return fmt.Errorf("%w: unknown artifact reference %q", ErrNotFound, url)
	}
	storedName := strings.TrimPrefix(url, s.urlPrefix+"/")
	// Refuse path escapes; stored names are flat UUID filenames.
	if strings.Contains(storedName, "/") || strings.Contains(storedName, "..") {
		return fmt.Errorf("%w: unknown artifact reference %q", ErrNotFound, url)
	}
	if err := os.Remove(filepath.Join(s.root, storedName)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: artifact %q", ErrNotFound, url)
		}
		return externalErr("artifact-store", err)
	}
	return nil
}

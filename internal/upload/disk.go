// Package upload stores blog and profile images on local disk,
// served back under a static URL prefix.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"

	"github.com/Brianali-codes/Remaya-full/internal/core"
)

// allowed image extensions; anything else is rejected before the
// file is written
var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type DiskStore struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewDiskStore(dir, baseURL string, maxBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %q: %w", dir, err)
	}
	return &DiskStore{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}, nil
}

// MaxBytes is the per-upload size cap, enforced by the handler before
// the body reaches Save.
func (d *DiskStore) MaxBytes() int64 {
	return d.maxBytes
}

// Dir is the directory uploads are written to, served statically by
// the API server.
func (d *DiskStore) Dir() string {
	return d.dir
}

// Save writes the uploaded image under a generated name and returns
// the public URL it will be served from. The original filename only
// contributes its extension.
func (d *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExt[ext]; !ok {
		return "", core.Invalid("image", fmt.Sprintf("unsupported file type %q", ext))
	}

	name := "image-" + xid.New().String() + ext
	path := filepath.Join(d.dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := io.Copy(f, io.LimitReader(r, d.maxBytes)); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return d.baseURL + "/" + name, nil
}

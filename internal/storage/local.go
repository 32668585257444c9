// Package storage persists uploaded banner images on the local
// filesystem and maps them to public URLs.
package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/workadmin/workadmin-go/internal/util"
)

// PublicPrefix is the URL path prefix under which stored files are served.
const PublicPrefix = "/uploads"

// Local stores files under a single base directory. Filenames are
// validated against path traversal before any filesystem operation.
type Local struct {
	baseDir string
}

// NewLocal creates the base directory if needed and returns a store
// rooted there.
func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

// BannerFilename generates a unique name for a banner upload. A slug of
// the original filename is kept so stored files stay recognizable; the
// timestamp guarantees uniqueness.
func BannerFilename(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	slug := util.Slugify(base)
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "banner"
	}
	return fmt.Sprintf("%s-%d%s", slug, time.Now().UnixMilli(), ext)
}

// Save writes data under the given filename and returns the name as
// stored. The name must not contain directory components.
func (l *Local) Save(name string, data []byte) (string, error) {
	safe, err := util.SanitizeFilename(name)
	if err != nil {
		return "", err
	}

	target, err := util.SafeJoinPath(l.baseDir, safe)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(target, data, 0o640); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return safe, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (l *Local) Remove(name string) error {
	target, err := util.SafeJoinPath(l.baseDir, filepath.Base(name))
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Path returns the filesystem path for a stored file.
func (l *Local) Path(name string) (string, error) {
	return util.SafeJoinPath(l.baseDir, filepath.Base(name))
}

// PublicURL returns the URL path under which a stored file is served.
func (l *Local) PublicURL(name string) string {
	return path.Join(PublicPrefix, path.Base(name))
}

// BaseDir returns the directory files are stored in.
func (l *Local) BaseDir() string {
	return l.baseDir
}

// Package artifact turns local files into candidate artifacts
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// FromPath builds an Artifact for the file at path. The media type is
// sniffed from the content, not taken from the extension.
func FromPath(path string) (*domain.Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}

	return &domain.Artifact{
		Name:     filepath.Base(path),
		MIMEType: baseType(mt.String()),
		Size:     info.Size(),
		Path:     path,
	}, nil
}

// FormatSize renders a byte count the way file labels show it
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func baseType(mt string) string {
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

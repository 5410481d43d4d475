// Package validate rejects malformed input before any remote call is made.
package validate

import (
	"strings"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// Artifact checks a candidate for submission: presence, type, then size.
// The order only decides which reason is reported.
func Artifact(a *domain.Artifact) error {
	if a == nil {
		return &domain.ValidationError{Field: "file", Err: domain.ErrNoFile}
	}
	if !a.IsPDF() {
		return &domain.ValidationError{Field: "file", Err: domain.ErrInvalidType}
	}
	if a.Size > domain.MaxArtifactSize {
		return &domain.ValidationError{Field: "file", Err: domain.ErrTooLarge}
	}
	return nil
}

// DroppedArtifact checks a dropped candidate. Only presence and type are
// checked here; size is checked again when the artifact is submitted.
func DroppedArtifact(a *domain.Artifact) error {
	if a == nil {
		return &domain.ValidationError{Field: "file", Err: domain.ErrNoFile}
	}
	if !a.IsPDF() {
		return &domain.ValidationError{Field: "file", Err: domain.ErrInvalidType}
	}
	return nil
}

// Query returns the trimmed question text, or an error when nothing is left
func Query(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &domain.ValidationError{Field: "question", Err: domain.ErrEmptyQuery}
	}
	return trimmed, nil
}

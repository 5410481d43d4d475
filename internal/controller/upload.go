package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/artifact"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/submit"
	"github.com/liliang-cn/askdesk/internal/validate"
)

// Upload trigger labels
const (
	UploadLabel     = "Upload Document"
	UploadBusyLabel = "Processing..."
)

// ArtifactSubmitter performs the remote upload
type ArtifactSubmitter interface {
	SubmitArtifact(ctx context.Context, a *domain.Artifact) (*domain.UploadResult, error)
}

// UploadView renders the upload form
type UploadView interface {
	SetUploadTrigger(label string, enabled bool)
	SetFileLabel(text, icon string, hasFile bool)
}

// Upload owns the artifact selection and the upload submission
type Upload struct {
	*submit.Runner[*domain.UploadResult]

	remote   ArtifactSubmitter
	notifier Notifier
	view     UploadView
	logger   *zap.Logger

	selected *domain.Artifact
}

// NewUpload creates the upload controller
func NewUpload(remote ArtifactSubmitter, notifier Notifier, view UploadView, logger *zap.Logger) *Upload {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &Upload{
		remote:   remote,
		notifier: notifier,
		view:     view,
		logger:   logger,
	}
	u.Runner = submit.NewRunner[*domain.UploadResult](submit.Config{
		Name:      "upload",
		Label:     UploadLabel,
		BusyLabel: UploadBusyLabel,
		Render:    view.SetUploadTrigger,
		Logger:    logger,
	}, u)
	return u
}

// Select replaces the current artifact. A nil artifact clears the selection.
func (u *Upload) Select(a *domain.Artifact) {
	u.Post(func() {
		u.selected = a
		u.renderSelection()
	})
}

// Selected returns the current artifact
func (u *Upload) Selected() *domain.Artifact {
	var a *domain.Artifact
	if !u.Do(func() { a = u.selected }) {
		return u.selected
	}
	return a
}

// Begin clears the status slot and validates the selection
func (u *Upload) Begin() submit.Call[*domain.UploadResult] {
	u.notifier.Clear()

	a := u.selected
	if err := validate.Artifact(a); err != nil {
		u.logger.Info("Upload rejected", zap.Error(err))
		u.notifier.Show(validationMessage(err), true)
		return nil
	}

	return func(ctx context.Context) (*domain.UploadResult, error) {
		return u.remote.SubmitArtifact(ctx, a)
	}
}

// Settle reports the outcome in the status slot
func (u *Upload) Settle(res *domain.UploadResult, err error) bool {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		u.logger.Info("Upload rejected at submission", zap.Error(err))
		u.notifier.Show(validationMessage(err), true)
		return false
	}
	if err != nil {
		u.logger.Warn("Upload failed", zap.Error(err))
		u.notifier.Show(msgUploadTransport, true)
		return false
	}
	if res == nil {
		res = &domain.UploadResult{}
	}

	switch {
	case res.Message != "":
		u.notifier.Show("✓ "+res.Message, false)
		return true
	case res.Error != "":
		u.logger.Warn("Upload rejected by server", zap.Error(&domain.ServerError{Op: "upload", Message: res.Error}))
		u.notifier.Show("✗ "+res.Error, true)
		return false
	default:
		// The service does not always include a message on success
		u.notifier.Show(msgUploadDefault, false)
		return true
	}
}

func (u *Upload) renderSelection() {
	if u.selected == nil {
		u.view.SetFileLabel(labelNoFile, iconNoFile, false)
		return
	}
	text := u.selected.Name + " (" + artifact.FormatSize(u.selected.Size) + ")"
	u.view.SetFileLabel(text, iconFile, true)
}

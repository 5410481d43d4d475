package controller_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liliang-cn/askdesk/internal/controller"
	"github.com/liliang-cn/askdesk/internal/domain"
)

func TestUploadRejectsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		artifact *domain.Artifact
		message  string
	}{
		{name: "nothing selected", artifact: nil, message: "Please select a PDF file to upload."},
		{name: "not a pdf", artifact: &domain.Artifact{Name: "photo.png", MIMEType: "image/png", Size: 100}, message: "Please select a valid PDF file."},
		{name: "too large", artifact: pdf(domain.MaxArtifactSize + 1), message: "File size exceeds 10 MiB limit. Please select a smaller file."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{uploadRes: &domain.UploadResult{Message: "ok"}}
			u, view, _ := newUpload(t, remote)

			u.Select(tt.artifact)
			u.Submit()

			assert.Equal(t, domain.StateIdle, u.State())
			assert.Equal(t, int32(0), remote.uploads.Load())

			n, ok := view.Notification()
			require.True(t, ok)
			assert.True(t, n.Error)
			assert.Equal(t, tt.message, n.Text)
			assert.Equal(t, controller.UploadLabel, view.UploadTrigger().Label)
			assert.True(t, view.UploadTrigger().Enabled)
		})
	}
}

func TestUploadAcceptsSizeBoundary(t *testing.T) {
	remote := &fakeRemote{uploadRes: &domain.UploadResult{Message: "PDF uploaded and split into 4 chunks."}}
	u, view, _ := newUpload(t, remote)

	a := pdf(domain.MaxArtifactSize)
	u.Select(a)
	u.Submit()

	assert.Equal(t, domain.StateSucceeded, awaitSettled(t, u.Settled()))
	assert.Equal(t, int32(1), remote.uploads.Load())
	assert.Same(t, a, remote.artifacts[0])

	n, ok := view.Notification()
	require.True(t, ok)
	assert.False(t, n.Error)
	assert.Equal(t, "✓ PDF uploaded and split into 4 chunks.", n.Text)

	// Success messages dismiss themselves
	assert.Eventually(t, func() bool {
		_, ok := view.Notification()
		return !ok
	}, 20*dismissAfter, tick)
}

func TestUploadPendingDisablesTrigger(t *testing.T) {
	remote := &fakeRemote{uploadRes: &domain.UploadResult{Message: "done"}, gate: make(chan struct{})}
	u, view, _ := newUpload(t, remote)

	u.Select(pdf(2048))
	u.Submit()
	require.Eventually(t, func() bool { return u.State() == domain.StatePending }, settleWait, tick)

	assert.Equal(t, controller.UploadBusyLabel, view.UploadTrigger().Label)
	assert.False(t, view.UploadTrigger().Enabled)

	u.Submit()
	u.Submit()
	close(remote.gate)

	assert.Equal(t, domain.StateSucceeded, awaitSettled(t, u.Settled()))
	assert.Equal(t, int32(1), remote.uploads.Load())
	assert.Equal(t, controller.UploadLabel, view.UploadTrigger().Label)
	assert.True(t, view.UploadTrigger().Enabled)
}

func TestUploadImplicitSuccess(t *testing.T) {
	remote := &fakeRemote{uploadRes: &domain.UploadResult{}}
	u, view, _ := newUpload(t, remote)

	u.Select(pdf(10))
	u.Submit()

	assert.Equal(t, domain.StateSucceeded, awaitSettled(t, u.Settled()))
	n, ok := view.Notification()
	require.True(t, ok)
	assert.False(t, n.Error)
	assert.Contains(t, n.Text, "Document uploaded successfully")
}

func TestUploadServerError(t *testing.T) {
	remote := &fakeRemote{uploadRes: &domain.UploadResult{Error: "cannot open broken document"}}
	u, view, _ := newUpload(t, remote)

	u.Select(pdf(10))
	u.Submit()

	assert.Equal(t, domain.StateFailed, awaitSettled(t, u.Settled()))
	n, ok := view.Notification()
	require.True(t, ok)
	assert.True(t, n.Error)
	assert.Equal(t, "✗ cannot open broken document", n.Text)
}

func TestUploadTransportFailure(t *testing.T) {
	remote := &fakeRemote{uploadErr: &domain.TransportError{Op: "upload", Err: errUnreachable}}
	u, view, _ := newUpload(t, remote)

	u.Select(pdf(10))
	u.Submit()

	assert.Equal(t, domain.StateFailed, awaitSettled(t, u.Settled()))
	assert.Equal(t, domain.StateFailed, u.State())
	assert.True(t, view.UploadTrigger().Enabled)
	assert.Equal(t, controller.UploadLabel, view.UploadTrigger().Label)

	n, ok := view.Notification()
	require.True(t, ok)
	assert.True(t, n.Error)
	assert.NotContains(t, n.Text, "connection refused")

	// The error outlives the dismiss window
	assert.Never(t, func() bool {
		_, ok := view.Notification()
		return !ok
	}, 3*dismissAfter, tick)
}

func TestUploadNextAttemptClearsError(t *testing.T) {
	remote := &fakeRemote{uploadErr: &domain.TransportError{Op: "upload", Err: errUnreachable}}
	u, view, _ := newUpload(t, remote)

	u.Select(pdf(10))
	u.Submit()
	assert.Equal(t, domain.StateFailed, awaitSettled(t, u.Settled()))

	remote.uploadErr = nil
	remote.uploadRes = &domain.UploadResult{Message: "ok"}
	u.Submit()
	assert.Equal(t, domain.StateSucceeded, awaitSettled(t, u.Settled()))

	n, _ := view.Notification()
	assert.False(t, n.Error)
	assert.Equal(t, int32(2), remote.uploads.Load())
}

func TestUploadSelectionLabel(t *testing.T) {
	u, view, _ := newUpload(t, &fakeRemote{})

	u.Select(pdf(1536))
	assert.Equal(t, "policy.pdf", u.Selected().Name)
	label := view.FileLabel()
	assert.True(t, label.HasFile)
	assert.Equal(t, "✓", label.Icon)
	assert.Equal(t, "policy.pdf (1.5 KiB)", label.Text)

	u.Select(nil)
	assert.Nil(t, u.Selected())
	label = view.FileLabel()
	assert.False(t, label.HasFile)
	assert.Equal(t, "Choose PDF file...", label.Text)
	assert.Equal(t, "📄", label.Icon)
}

func TestUploadSuccessThenSlowDismiss(t *testing.T) {
	remote := &fakeRemote{uploadRes: &domain.UploadResult{Message: "ok"}}
	u, view, n := newUpload(t, remote)

	u.Select(pdf(10))
	u.Submit()
	awaitSettled(t, u.Settled())

	// An error raised after the success keeps its slot past the old timer
	n.Show("later failure", true)
	time.Sleep(2 * dismissAfter)
	got, ok := view.Notification()
	require.True(t, ok)
	assert.Equal(t, "later failure", got.Text)
}

func TestUploadLocalFileErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "file removed after pick",
			err:  &domain.ValidationError{Field: "file", Err: domain.ErrUnreadable},
			want: "✗ The selected file can no longer be read. Please select it again.",
		},
		{
			name: "file grew past the ceiling",
			err:  &domain.ValidationError{Field: "file", Err: domain.ErrTooLarge},
			want: "File size exceeds 10 MiB limit. Please select a smaller file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, view, _ := newUpload(t, &fakeRemote{uploadErr: tt.err})

			u.Select(pdf(10))
			u.Submit()

			assert.Equal(t, domain.StateFailed, awaitSettled(t, u.Settled()))
			n, ok := view.Notification()
			require.True(t, ok)
			assert.True(t, n.Error)
			assert.Equal(t, tt.want, n.Text)
			assert.NotContains(t, n.Text, "unable to reach the server")
		})
	}
}

package controller_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/liliang-cn/askdesk/internal/controller"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/notify"
	"github.com/liliang-cn/askdesk/internal/progress"
	"github.com/liliang-cn/askdesk/internal/testutil"
)

const (
	dismissAfter = 50 * time.Millisecond
	settleWait   = 2 * time.Second
	tick         = 5 * time.Millisecond
)

var errUnreachable = errors.New("dial tcp: connection refused")

// fakeRemote answers both operations from canned values
type fakeRemote struct {
	uploadRes *domain.UploadResult
	uploadErr error
	queryRes  *domain.QueryResult
	queryErr  error
	gate      chan struct{}

	uploads atomic.Int32
	queries atomic.Int32

	mu        sync.Mutex
	artifacts []*domain.Artifact
	questions []string
}

func (f *fakeRemote) SubmitArtifact(ctx context.Context, a *domain.Artifact) (*domain.UploadResult, error) {
	f.uploads.Add(1)
	f.mu.Lock()
	f.artifacts = append(f.artifacts, a)
	f.mu.Unlock()
	f.wait(ctx)
	return f.uploadRes, f.uploadErr
}

func (f *fakeRemote) SubmitQuery(ctx context.Context, text string) (*domain.QueryResult, error) {
	f.queries.Add(1)
	f.mu.Lock()
	f.questions = append(f.questions, text)
	f.mu.Unlock()
	f.wait(ctx)
	return f.queryRes, f.queryErr
}

func (f *fakeRemote) wait(ctx context.Context) {
	if f.gate == nil {
		return
	}
	select {
	case <-f.gate:
	case <-ctx.Done():
	}
}

func run(t *testing.T, runner interface{ Run(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func newUpload(t *testing.T, remote *fakeRemote) (*controller.Upload, *testutil.View, *notify.Notifier) {
	t.Helper()
	view := testutil.NewView()
	n := notify.New(view, dismissAfter, nil)
	u := controller.NewUpload(remote, n, view, zaptest.NewLogger(t))
	run(t, u)
	return u, view, n
}

func newQuery(t *testing.T, remote *fakeRemote) (*controller.Query, *testutil.View, *notify.Notifier) {
	t.Helper()
	view := testutil.NewView()
	n := notify.New(view, dismissAfter, nil)
	q := controller.NewQuery(remote, n, progress.New(view, time.Hour), view, zaptest.NewLogger(t))
	run(t, q)
	return q, view, n
}

func awaitSettled(t *testing.T, ch <-chan domain.SubmissionState) domain.SubmissionState {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(settleWait):
		t.Fatal("submission did not settle")
		return domain.StateIdle
	}
}

func pdf(size int64) *domain.Artifact {
	return &domain.Artifact{Name: "policy.pdf", MIMEType: domain.MIMETypePDF, Size: size, Path: "/tmp/policy.pdf"}
}

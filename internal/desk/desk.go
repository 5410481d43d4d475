// Package desk wires the controllers, notifications, progress and drop
// surface to a single View.
package desk

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/liliang-cn/askdesk/internal/config"
	"github.com/liliang-cn/askdesk/internal/connectivity"
	"github.com/liliang-cn/askdesk/internal/controller"
	"github.com/liliang-cn/askdesk/internal/dropzone"
	"github.com/liliang-cn/askdesk/internal/notify"
	"github.com/liliang-cn/askdesk/internal/progress"
)

// View is everything the desk renders to
type View interface {
	notify.Display
	progress.Display
	controller.UploadView
	controller.QueryView
	dropzone.Highlighter
}

// Remote is the service both controllers talk to
type Remote interface {
	controller.ArtifactSubmitter
	controller.QuerySubmitter
	connectivity.Prober
}

// Desk is one interaction surface: an upload form, a query form and the
// feedback they share
type Desk struct {
	Upload   *controller.Upload
	Query    *controller.Query
	Drop     *dropzone.Zone
	Notifier *notify.Notifier
	Progress *progress.Rotator

	watcher *connectivity.Watcher
	logger  *zap.Logger
}

// New builds a Desk from configuration
func New(cfg *config.Config, remote Remote, view View, logger *zap.Logger) *Desk {
	if logger == nil {
		logger = zap.NewNop()
	}

	n := notify.New(view, cfg.Notify.DismissAfter, logger.Named("notify"))
	p := progress.New(view, cfg.Progress.Interval)
	upload := controller.NewUpload(remote, n, view, logger.Named("upload"))
	query := controller.NewQuery(remote, n, p, view, logger.Named("query"))

	d := &Desk{
		Upload:   upload,
		Query:    query,
		Drop:     dropzone.New(upload, n, view, logger.Named("drop")),
		Notifier: n,
		Progress: p,
		logger:   logger,
	}
	if cfg.Connectivity.Enabled {
		d.watcher = connectivity.New(remote, n, cfg.Connectivity.ProbeInterval, logger.Named("connectivity"))
	}

	// initial file label
	upload.Select(nil)
	return d
}

// Run drives both controllers and the connectivity observer until ctx is done
func (d *Desk) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return d.Upload.Run(ctx) })
	g.Go(func() error { return d.Query.Run(ctx) })
	if d.watcher != nil {
		g.Go(func() error { return d.watcher.Run(ctx) })
	}

	d.logger.Debug("Desk running", zap.Bool("connectivity", d.watcher != nil))
	err := g.Wait()
	d.Progress.Stop()
	return err
}

// Online reports the last observed connectivity. Without an observer the
// service is assumed reachable.
func (d *Desk) Online() bool {
	if d.watcher == nil {
		return true
	}
	return d.watcher.Online()
}

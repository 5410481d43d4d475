// Package dropzone feeds dropped files into the artifact selection.
package dropzone

import (
	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/validate"
)

// Kind is the drag event type
type Kind int

const (
	DragEnter Kind = iota
	DragOver
	DragLeave
	Drop
)

func (k Kind) String() string {
	switch k {
	case DragEnter:
		return "dragenter"
	case DragOver:
		return "dragover"
	case DragLeave:
		return "dragleave"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// Event is a drag event on the drop surface. Files is set on Drop.
type Event struct {
	Kind  Kind
	Files []*domain.Artifact
}

// Selector receives an accepted artifact
type Selector interface {
	Select(a *domain.Artifact)
}

// Notifier reports the outcome of a drop
type Notifier interface {
	Show(text string, isError bool)
}

// Highlighter renders the drag-over highlight
type Highlighter interface {
	SetDropHighlight(on bool)
}

// Zone is the drop surface for the upload form
type Zone struct {
	selector Selector
	notifier Notifier
	view     Highlighter
	logger   *zap.Logger
}

// New creates a drop surface
func New(selector Selector, notifier Notifier, view Highlighter, logger *zap.Logger) *Zone {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zone{
		selector: selector,
		notifier: notifier,
		view:     view,
		logger:   logger,
	}
}

// Handle processes ev. It always reports true: every drag event on the
// surface is consumed so the default handling never runs.
func (z *Zone) Handle(ev Event) bool {
	switch ev.Kind {
	case DragEnter, DragOver:
		z.view.SetDropHighlight(true)
	case DragLeave:
		z.view.SetDropHighlight(false)
	case Drop:
		z.view.SetDropHighlight(false)
		z.drop(ev.Files)
	}
	return true
}

func (z *Zone) drop(files []*domain.Artifact) {
	var first *domain.Artifact
	if len(files) > 0 {
		first = files[0]
	}

	// size is checked when the artifact is submitted
	if err := validate.DroppedArtifact(first); err != nil {
		z.logger.Info("Drop rejected", zap.Int("files", len(files)), zap.Error(err))
		z.notifier.Show("Please drop a valid PDF file.", true)
		return
	}

	z.selector.Select(first)
	z.notifier.Show("📄 File ready for upload: "+first.Name, false)
}

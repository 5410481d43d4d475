package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/artifact"
	"github.com/liliang-cn/askdesk/internal/desk"
	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/dropzone"
)

const help = `commands:
  pick <path>          select a PDF (no path clears the selection)
  drop <path> [...]    drop files on the upload area (first one is used)
  upload               upload the selected PDF
  ask <question>       ask a question about the uploaded document
  status               show both forms
  help                 show this help
  quit                 leave`

// Shell turns input lines into desk events
type Shell struct {
	desk   *desk.Desk
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewShell creates a Shell
func NewShell(d *desk.Desk, in io.Reader, out io.Writer, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{desk: d, in: in, out: out, logger: logger}
}

// Run reads commands until quit, end of input or ctx is done
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errs <- sc.Err()
	}()

	fmt.Fprintln(s.out, `askdesk ready, type "help" for commands`)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errs:
					return err
				default:
					return nil
				}
			}
			if quit := s.Exec(line); quit {
				return nil
			}
		}
	}
}

// Exec runs one command line and reports whether the shell should exit
func (s *Shell) Exec(line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
	case "pick":
		s.pick(rest)
	case "drop":
		s.drop(strings.Fields(rest))
	case "upload":
		s.desk.Upload.Submit()
	case "ask":
		// the raw text is kept; trimming happens on submit
		s.desk.Query.SetInput(rest)
		s.desk.Query.Submit()
	case "status":
		s.status()
	case "help":
		fmt.Fprintln(s.out, help)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q, type \"help\"\n", cmd)
	}
	return false
}

func (s *Shell) pick(path string) {
	if path == "" {
		s.desk.Upload.Select(nil)
		return
	}
	a, err := artifact.FromPath(path)
	if err != nil {
		s.logger.Debug("Pick failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(s.out, "cannot read %s: %v\n", path, err)
		return
	}
	s.desk.Upload.Select(a)
}

// drop raises a full drag gesture. Only the first path is read; an
// unreadable first file arrives as an empty drop.
func (s *Shell) drop(paths []string) {
	var files []*domain.Artifact
	if len(paths) > 0 {
		a, err := artifact.FromPath(paths[0])
		if err != nil {
			s.logger.Debug("Dropped file unreadable", zap.String("path", paths[0]), zap.Error(err))
		} else {
			files = append(files, a)
		}
	}

	s.desk.Drop.Handle(dropzone.Event{Kind: dropzone.DragEnter})
	s.desk.Drop.Handle(dropzone.Event{Kind: dropzone.DragOver})
	s.desk.Drop.Handle(dropzone.Event{Kind: dropzone.Drop, Files: files})
}

func (s *Shell) status() {
	selected := "none"
	if a := s.desk.Upload.Selected(); a != nil {
		selected = fmt.Sprintf("%s (%s, %s)", a.Name, a.MIMEType, artifact.FormatSize(a.Size))
	}
	online := "online"
	if !s.desk.Online() {
		online = "offline"
	}
	fmt.Fprintf(s.out, "file:   %s\n", selected)
	fmt.Fprintf(s.out, "upload: %s\n", s.desk.Upload.State())
	fmt.Fprintf(s.out, "ask:    %s\n", s.desk.Query.State())
	fmt.Fprintf(s.out, "server: %s\n", online)
}

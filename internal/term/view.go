// Package term renders the desk to a terminal and reads user commands.
package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// View writes every visible change as a line of text
type View struct {
	mu  sync.Mutex
	out io.Writer

	progress string
}

// NewView creates a View writing to out
func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format+"\n", args...)
}

// SetUploadTrigger prints the upload trigger label
func (v *View) SetUploadTrigger(label string, enabled bool) {
	v.printf("[upload] %s%s", label, disabledSuffix(enabled))
}

// SetQueryTrigger prints the ask trigger label
func (v *View) SetQueryTrigger(label string, enabled bool) {
	v.printf("[ask] %s%s", label, disabledSuffix(enabled))
}

// SetFileLabel prints the current selection
func (v *View) SetFileLabel(text, icon string, hasFile bool) {
	v.printf("%s %s", icon, text)
}

// ShowNotification prints a notification, errors prefixed with "!"
func (v *View) ShowNotification(n domain.Notification) {
	if n.Error {
		v.printf("! %s", n.Text)
		return
	}
	v.printf("» %s", n.Text)
}

// ClearNotification is a no-op: printed lines stay in the scrollback
func (v *View) ClearNotification() {}

// SetAnswer prints a visible answer panel
func (v *View) SetAnswer(p domain.Panel) {
	if !p.Visible {
		return
	}
	v.printf("%s\n%s", p.Title, p.Body)
}

// SetRecommendation prints a visible recommendation panel
func (v *View) SetRecommendation(p domain.Panel) {
	if !p.Visible {
		return
	}
	v.printf("%s %s", p.Title, p.Body)
}

// SetProgress prints each new progress phrase once
func (v *View) SetProgress(text string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !visible || text == v.progress {
		v.progress = text
		return
	}
	v.progress = text
	fmt.Fprintf(v.out, "… %s\n", text)
}

// SetQueryInput is a no-op: questions are typed as shell arguments
func (v *View) SetQueryInput(text string) {}

// FocusQuery prompts for a question
func (v *View) FocusQuery() {
	v.printf("? type a question after 'ask'")
}

// ScrollToAnswer is a no-op: terminal output already follows the latest answer
func (v *View) ScrollToAnswer() {}

// SetDropHighlight prints a hint while a drag is over the surface
func (v *View) SetDropHighlight(on bool) {
	if on {
		v.printf("[drop] release to select")
	}
}

func disabledSuffix(enabled bool) string {
	if enabled {
		return ""
	}
	return " (busy)"
}

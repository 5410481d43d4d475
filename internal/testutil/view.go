package testutil

import (
	"sync"

	"github.com/liliang-cn/askdesk/internal/domain"
)

// Trigger is the recorded state of a trigger control
type Trigger struct {
	Label   string
	Enabled bool
}

// FileLabel is the recorded state of the file picker label
type FileLabel struct {
	Text    string
	Icon    string
	HasFile bool
}

// View records everything rendered to it. It satisfies every view
// interface the controllers use.
type View struct {
	mu sync.Mutex

	uploadTrigger  Trigger
	queryTrigger   Trigger
	fileLabel      FileLabel
	notification   *domain.Notification
	notifications  []domain.Notification
	answer         domain.Panel
	recommendation domain.Panel
	progress       string
	progressOn     bool
	progressSeen   []string
	queryInput     string
	focusCount     int
	scrollCount    int
	highlighted    bool
	highlightCount int
}

// NewView creates an empty recording view
func NewView() *View {
	return &View{}
}

// SetUploadTrigger records the call
func (v *View) SetUploadTrigger(label string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.uploadTrigger = Trigger{Label: label, Enabled: enabled}
}

// SetQueryTrigger records the call
func (v *View) SetQueryTrigger(label string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.queryTrigger = Trigger{Label: label, Enabled: enabled}
}

// SetFileLabel records the call
func (v *View) SetFileLabel(text, icon string, hasFile bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fileLabel = FileLabel{Text: text, Icon: icon, HasFile: hasFile}
}

// ShowNotification records the call
func (v *View) ShowNotification(n domain.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notification = &n
	v.notifications = append(v.notifications, n)
}

// ClearNotification records the call
func (v *View) ClearNotification() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notification = nil
}

// SetAnswer records the call
func (v *View) SetAnswer(p domain.Panel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.answer = p
}

// SetRecommendation records the call
func (v *View) SetRecommendation(p domain.Panel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recommendation = p
}

// SetProgress records the call
func (v *View) SetProgress(text string, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress, v.progressOn = text, visible
	if visible {
		v.progressSeen = append(v.progressSeen, text)
	}
}

// SetQueryInput records the call
func (v *View) SetQueryInput(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.queryInput = text
}

// FocusQuery records the call
func (v *View) FocusQuery() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.focusCount++
}

// ScrollToAnswer records the call
func (v *View) ScrollToAnswer() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollCount++
}

// SetDropHighlight records the call
func (v *View) SetDropHighlight(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if on && !v.highlighted {
		v.highlightCount++
	}
	v.highlighted = on
}

// UploadTrigger returns the upload trigger state
func (v *View) UploadTrigger() Trigger {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.uploadTrigger
}

// QueryTrigger returns the query trigger state
func (v *View) QueryTrigger() Trigger {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.queryTrigger
}

// FileLabel returns the file label state
func (v *View) FileLabel() FileLabel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fileLabel
}

// Notification returns the visible notification
func (v *View) Notification() (domain.Notification, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.notification == nil {
		return domain.Notification{}, false
	}
	return *v.notification, true
}

// Notifications returns every notification shown so far
func (v *View) Notifications() []domain.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]domain.Notification(nil), v.notifications...)
}

// Answer returns the answer panel
func (v *View) Answer() domain.Panel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.answer
}

// Recommendation returns the recommendation panel
func (v *View) Recommendation() domain.Panel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recommendation
}

// Progress returns the progress line and whether it is visible
func (v *View) Progress() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.progress, v.progressOn
}

// ProgressSeen returns every phrase shown so far
func (v *View) ProgressSeen() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.progressSeen...)
}

// QueryInput returns the last programmatic value of the query input
func (v *View) QueryInput() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.queryInput
}

// FocusCount returns how many times the query input was focused
func (v *View) FocusCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.focusCount
}

// ScrollCount returns how many times the view scrolled to the answer
func (v *View) ScrollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollCount
}

// Highlighted reports whether the drop surface is highlighted
func (v *View) Highlighted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.highlighted
}

// HighlightCount returns how many times the highlight was switched on
func (v *View) HighlightCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.highlightCount
}

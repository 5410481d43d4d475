package domain

// Notification is a transient status message
type Notification struct {
	Text  string
	Error bool
}

// Panel is a persistent result area. A zero Panel is hidden.
type Panel struct {
	Visible bool
	Title   string
	Body    string
	Error   bool
}

package domain

// Artifact constraints checked before submission
const (
	MIMETypePDF           = "application/pdf"
	MaxArtifactSize int64 = 10 * 1024 * 1024
)

// Artifact is a candidate file selected or dropped for ingestion.
// Only the current selection exists; a new selection replaces it wholesale.
type Artifact struct {
	Name     string
	MIMEType string
	Size     int64
	Path     string
}

// IsPDF reports whether the artifact carries the PDF media type
func (a *Artifact) IsPDF() bool {
	return a != nil && a.MIMEType == MIMETypePDF
}

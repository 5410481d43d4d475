// Package controller holds the upload and query submission controllers.
package controller

import (
	"errors"
	"fmt"

	"github.com/liliang-cn/askdesk/internal/artifact"
	"github.com/liliang-cn/askdesk/internal/domain"
)

// Notifier is the transient status slot shared by both controllers
type Notifier interface {
	Show(text string, isError bool)
	Clear()
}

// Messages shown to the user
const (
	msgNoFile          = "Please select a PDF file to upload."
	msgInvalidType     = "Please select a valid PDF file."
	msgUnreadable      = "✗ The selected file can no longer be read. Please select it again."
	msgUploadDefault   = "✓ Document uploaded successfully. You can now ask questions about your document."
	msgUploadTransport = "✗ Upload failed: unable to reach the server. Please check your connection and try again."
	msgQueryTransport  = "Unable to process your request. Please check your connection and try again."

	titleAnswer         = "📋 Analysis Result:"
	titleError          = "⚠️ Error:"
	titleTransport      = "⚠️ Connection Error:"
	titleRecommendation = "💡 Recommendation:"

	labelNoFile = "Choose PDF file..."
	iconNoFile  = "📄"
	iconFile    = "✓"
)

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return msgNoFile
	case errors.Is(err, domain.ErrUnreadable):
		return msgUnreadable
	case errors.Is(err, domain.ErrTooLarge):
		return fmt.Sprintf("File size exceeds %s limit. Please select a smaller file.",
			artifact.FormatSize(domain.MaxArtifactSize))
	default:
		return msgInvalidType
	}
}

package term

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/liliang-cn/askdesk/internal/domain"
)

func TestViewRendersFeedback(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewView(out)

	v.SetUploadTrigger("Processing...", false)
	v.ShowNotification(domain.Notification{Text: "✗ bad file", Error: true})
	v.ShowNotification(domain.Notification{Text: "✓ uploaded"})
	v.SetAnswer(domain.Panel{Visible: true, Title: "📋 Analysis Result:", Body: "covered"})
	v.SetRecommendation(domain.Panel{})

	s := out.String()
	assert.Contains(t, s, "[upload] Processing... (busy)")
	assert.Contains(t, s, "! ✗ bad file")
	assert.Contains(t, s, "» ✓ uploaded")
	assert.Contains(t, s, "📋 Analysis Result:\ncovered")
	assert.NotContains(t, s, "Recommendation")
}

func TestViewPrintsEachPhraseOnce(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewView(out)

	v.SetProgress("Processing your request...", true)
	v.SetProgress("Processing your request...", true)
	v.SetProgress("Analyzing document content...", true)
	v.SetProgress("Processing your request...", false)

	assert.Equal(t, "… Processing your request...\n… Analyzing document content...\n", out.String())
}

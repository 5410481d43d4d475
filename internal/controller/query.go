package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/liliang-cn/askdesk/internal/domain"
	"github.com/liliang-cn/askdesk/internal/submit"
	"github.com/liliang-cn/askdesk/internal/validate"
)

// Query trigger labels
const (
	QueryLabel     = "Get Analysis"
	QueryBusyLabel = "Analyzing..."
)

// QuerySubmitter performs the remote query
type QuerySubmitter interface {
	SubmitQuery(ctx context.Context, text string) (*domain.QueryResult, error)
}

// Progress is shown while a query is pending
type Progress interface {
	Start()
	Stop()
}

// QueryView renders the query form and its result panels
type QueryView interface {
	SetQueryTrigger(label string, enabled bool)
	SetQueryInput(text string)
	FocusQuery()
	SetAnswer(p domain.Panel)
	SetRecommendation(p domain.Panel)
	ScrollToAnswer()
}

// Query owns the question input, the result panels and the query submission
type Query struct {
	*submit.Runner[*domain.QueryResult]

	remote   QuerySubmitter
	notifier Notifier
	progress Progress
	view     QueryView
	logger   *zap.Logger

	input string
}

// NewQuery creates the query controller
func NewQuery(remote QuerySubmitter, notifier Notifier, progress Progress, view QueryView, logger *zap.Logger) *Query {
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Query{
		remote:   remote,
		notifier: notifier,
		progress: progress,
		view:     view,
		logger:   logger,
	}
	q.Runner = submit.NewRunner[*domain.QueryResult](submit.Config{
		Name:      "query",
		Label:     QueryLabel,
		BusyLabel: QueryBusyLabel,
		Render:    view.SetQueryTrigger,
		Logger:    logger,
	}, q)
	return q
}

// SetInput records what the user typed
func (q *Query) SetInput(text string) {
	q.Post(func() { q.input = text })
}

// Input returns the current question text
func (q *Query) Input() string {
	var s string
	if !q.Do(func() { s = q.input }) {
		return q.input
	}
	return s
}

// Begin validates the question and switches the view to pending
func (q *Query) Begin() submit.Call[*domain.QueryResult] {
	text, err := validate.Query(q.input)
	if err != nil {
		// An empty question is an unfinished action, not an error
		q.view.FocusQuery()
		return nil
	}

	q.notifier.Clear()
	q.view.SetAnswer(domain.Panel{})
	q.view.SetRecommendation(domain.Panel{})
	q.progress.Start()

	return func(ctx context.Context) (*domain.QueryResult, error) {
		return q.remote.SubmitQuery(ctx, text)
	}
}

// Settle renders the result panels
func (q *Query) Settle(res *domain.QueryResult, err error) bool {
	q.progress.Stop()

	if err == nil && (res == nil || (res.Answer == "" && res.Error == "")) {
		err = &domain.TransportError{Op: "ask", Err: domain.ErrMalformedResponse}
	}
	if err != nil {
		q.logger.Warn("Query failed", zap.Error(err))
		q.view.SetAnswer(domain.Panel{Visible: true, Title: titleTransport, Body: msgQueryTransport, Error: true})
		q.view.SetRecommendation(domain.Panel{})
		return false
	}

	q.view.SetRecommendation(recommendationPanel(res.Recommendation))

	if res.Answer == "" {
		q.logger.Warn("Query rejected by server", zap.Error(&domain.ServerError{Op: "ask", Message: res.Error}))
		q.view.SetAnswer(domain.Panel{Visible: true, Title: titleError, Body: res.Error, Error: true})
		return false
	}

	q.view.SetAnswer(domain.Panel{Visible: true, Title: titleAnswer, Body: res.Answer})
	q.view.ScrollToAnswer()
	q.input = ""
	q.view.SetQueryInput("")
	return true
}

func recommendationPanel(text string) domain.Panel {
	if strings.TrimSpace(text) == "" {
		return domain.Panel{}
	}
	return domain.Panel{Visible: true, Title: titleRecommendation, Body: text}
}

// Package testutil holds test doubles shared across package tests
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Upload is a file received by the fake remote
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	RequestID   string
}

type response struct {
	status int
	body   any
	raw    string
}

// FakeRemote is an in-process stand-in for the ingestion and answering
// service. Responses are configurable per endpoint and requests can be
// held open to keep a submission in flight.
type FakeRemote struct {
	*httptest.Server

	UploadField string
	QueryField  string
	APIKey      string

	mu        sync.Mutex
	upload    response
	ask       response
	healthy   bool
	gate      chan struct{}
	release   func()
	uploads   []Upload
	questions []string
	requests  int
}

// NewFakeRemote starts a fake remote answering with successful payloads
func NewFakeRemote() *FakeRemote {
	gin.SetMode(gin.TestMode)

	f := &FakeRemote{
		UploadField: "file",
		QueryField:  "question",
		upload:      response{status: http.StatusOK, body: gin.H{"message": "PDF uploaded and split into 3 chunks."}},
		ask:         response{status: http.StatusOK, body: gin.H{"answer": "Surgery is covered.", "recommendation": "We recommend: Health Plus Plan"}},
		healthy:     true,
	}
	f.Server = httptest.NewServer(f.router())
	return f
}

func (f *FakeRemote) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(f.auth())

	r.GET("/health", f.handleHealth)
	r.POST("/upload", f.handleUpload)
	r.POST("/ask", f.handleAsk)
	return r
}

func (f *FakeRemote) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		f.mu.Lock()
		f.requests++
		key := f.APIKey
		f.mu.Unlock()

		if key == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != key {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (f *FakeRemote) handleHealth(c *gin.Context) {
	f.mu.Lock()
	healthy := f.healthy
	f.mu.Unlock()

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (f *FakeRemote) handleUpload(c *gin.Context) {
	file, err := c.FormFile(f.UploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, Upload{
		Field:       f.UploadField,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		RequestID:   c.GetHeader("X-Request-ID"),
	})
	resp, gate := f.upload, f.gate
	f.mu.Unlock()

	f.wait(c, gate)
	write(c, resp)
}

func (f *FakeRemote) handleAsk(c *gin.Context) {
	question := c.PostForm(f.QueryField)

	f.mu.Lock()
	f.questions = append(f.questions, question)
	resp, gate := f.ask, f.gate
	f.mu.Unlock()

	f.wait(c, gate)
	write(c, resp)
}

func (f *FakeRemote) wait(c *gin.Context, gate chan struct{}) {
	if gate == nil {
		return
	}
	select {
	case <-gate:
	case <-c.Request.Context().Done():
	}
}

func write(c *gin.Context, resp response) {
	if resp.raw != "" {
		c.Data(resp.status, "text/html; charset=utf-8", []byte(resp.raw))
		return
	}
	c.JSON(resp.status, resp.body)
}

// RespondUpload sets the JSON payload returned by /upload
func (f *FakeRemote) RespondUpload(status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upload = response{status: status, body: body}
}

// RespondUploadRaw makes /upload return a non-JSON body
func (f *FakeRemote) RespondUploadRaw(status int, raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upload = response{status: status, raw: raw}
}

// RespondAsk sets the JSON payload returned by /ask
func (f *FakeRemote) RespondAsk(status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ask = response{status: status, body: body}
}

// RespondAskRaw makes /ask return a non-JSON body
func (f *FakeRemote) RespondAskRaw(status int, raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ask = response{status: status, raw: raw}
}

// SetHealthy toggles the /health answer
func (f *FakeRemote) SetHealthy(healthy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthy = healthy
}

// Hold keeps /upload and /ask requests open until the returned func is called
func (f *FakeRemote) Hold() (release func()) {
	gate := make(chan struct{})
	var once sync.Once
	release = func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gate == gate {
				f.gate = nil
			}
			f.mu.Unlock()
			close(gate)
		})
	}

	f.mu.Lock()
	f.gate = gate
	f.release = release
	f.mu.Unlock()
	return release
}

// Close releases held requests and shuts the server down
func (f *FakeRemote) Close() {
	f.mu.Lock()
	release := f.release
	f.mu.Unlock()
	if release != nil {
		release()
	}
	f.Server.Close()
}

// Uploads returns the files received so far
func (f *FakeRemote) Uploads() []Upload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Upload(nil), f.uploads...)
}

// Questions returns the questions received so far
func (f *FakeRemote) Questions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.questions...)
}

// Requests returns the number of requests that reached the server
func (f *FakeRemote) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

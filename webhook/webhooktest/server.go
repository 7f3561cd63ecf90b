// ABOUTME: In-process fake of the backend webhook for package tests
// ABOUTME: Routes requests by action to scripted replies and records every call
package webhooktest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

// Reply is a scripted response.
type Reply struct {
	Status int
	Body   string
}

// Handler computes a reply for one decoded request.
type Handler func(req gjson.Result) Reply

// Server is an httptest server speaking the webhook protocol.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]Handler
	requests []gjson.Result
	gate     chan struct{}
}

// NewServer starts a fake webhook. Unscripted actions reply 200 with {"success":true}.
func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{handlers: map[string]Handler{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := gjson.ParseBytes(body)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	h, ok := s.handlers[req.Get("action").String()]
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	reply := Reply{Status: http.StatusOK, Body: `{"success":true}`}
	if ok {
		reply = h(req)
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}

// Handle scripts the reply for action.
func (s *Server) Handle(action string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = h
}

// Reply scripts a fixed reply for action.
func (s *Server) Reply(action string, status int, body string) {
	s.Handle(action, func(gjson.Result) Reply { return Reply{Status: status, Body: body} })
}

// Hold makes every subsequent request block until the returned release func is called.
func (s *Server) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Requests returns every request received so far.
func (s *Server) Requests() []gjson.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gjson.Result, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests carried action.
func (s *Server) Count(action string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Get("action").String() == action {
			n++
		}
	}
	return n
}

// Last returns the most recent request for action and whether one exists.
func (s *Server) Last(action string) (gjson.Result, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Get("action").String() == action {
			return reqs[i], true
		}
	}
	return gjson.Result{}, false
}

// Package site serves the dashboard page.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error constants
var (
	ErrRender = errors.New("page render failed")
)

// Link is a labelled outbound link.
type Link struct {
	Name string
	URL  string
}

// Page holds the values substituted into the page.
type Page struct {
	Title        string
	ContactEmail string
	Socials      []Link
}

// DefaultTitle heads the page.
const DefaultTitle = "Player Percentiles"

// Register attaches the page and its assets to mux.
func Register(_ context.Context, mux *http.ServeMux, page Page) {
	if mux == nil {
		panic("mux is nil")
	}
	if page.Title == "" {
		page.Title = DefaultTitle
	}
	root := NewRootHandler(page)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("/", root.HandleRoot)
}

// RootHandler renders the page.
type RootHandler struct {
	page Page
}

// NewRootHandler creates a new root handler.
func NewRootHandler(page Page) *RootHandler {
	return &RootHandler{page: page}
}

// Render writes the page HTML.
func (h *RootHandler) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// HandleRoot handles GET / and answers 404 for any other unmatched path.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	body, err := h.Render()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

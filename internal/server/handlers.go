package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shodgson/mdlist/markdown"
	"github.com/shodgson/mdlist/model"
)

// ErrEmptyInput is returned when a request carries neither markdown nor a
// document.
var ErrEmptyInput = errors.New("markdown or document is required")

type renderRequest struct {
	Markdown string      `json:"markdown,omitempty"`
	Document *model.Node `json:"document,omitempty"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

type parseResponse struct {
	Document *model.Node `json:"document"`
}

type restoreResponse struct {
	Markdown string `json:"markdown"`
}

// decode reads a JSON request body of at most cfg.MaxBodyBytes. It writes the
// error response itself and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req *renderRequest) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(req)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		jsonError(w, s.log, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
	case errors.Is(err, io.EOF):
		jsonError(w, s.log, ErrEmptyInput.Error(), http.StatusBadRequest)
	default:
		jsonError(w, s.log, "invalid request body: "+err.Error(), http.StatusBadRequest)
	}
	return false
}

// document returns the tree a request refers to: the given document, or the
// markdown parsed.
func (s *Server) document(req *renderRequest) (*model.Node, error) {
	if req.Document != nil {
		return req.Document, nil
	}
	if strings.TrimSpace(req.Markdown) == "" {
		return nil, ErrEmptyInput
	}
	return s.parser.ParseBytes([]byte(req.Markdown)), nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	doc, err := s.document(&req)
	if err != nil {
		jsonError(w, s.log, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := s.dom.RenderString(doc)
	if err != nil {
		s.log.Error("render failed", "error", err)
		jsonError(w, s.log, "failed to render document", http.StatusInternalServerError)
		return
	}
	writeJSON(w, s.log, http.StatusOK, renderResponse{HTML: out})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Markdown) == "" {
		jsonError(w, s.log, "markdown is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.log, http.StatusOK, parseResponse{Document: s.parser.ParseBytes([]byte(req.Markdown))})
}

func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Document == nil {
		jsonError(w, s.log, "document is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.log, http.StatusOK, restoreResponse{Markdown: markdown.Restore(req.Document)})
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response", "status", code, "error", err)
	}
}

func jsonError(w http.ResponseWriter, log *slog.Logger, msg string, code int) {
	writeJSON(w, log, code, map[string]string{"error": msg})
}

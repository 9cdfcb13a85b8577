package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/interview-platform/internal/extraction"
	"github.com/jonathan/interview-platform/internal/interview"
)

// maxUploadBytes caps resume uploads at 5MB.
const maxUploadBytes = 5 << 20

type analyzeRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
}

type turnRequest struct {
	History []interview.DialogueTurn    `json:"history"`
	RoleID  string                      `json:"roleId" validate:"required"`
	Profile *interview.CandidateProfile `json:"profile,omitempty"`
}

type evaluateRequest struct {
	Transcript string                      `json:"transcript" validate:"required"`
	RoleID     string                      `json:"roleId,omitempty"`
	Profile    *interview.CandidateProfile `json:"profile,omitempty"`
}

// handleResumeUpload accepts a multipart resume upload, extracts its text,
// and returns the plain text with its character count. The extension
// allow-list is checked before any bytes are read from the file part.
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field 'resume'")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extraction.Supported(ext) {
		s.pipelineError(w, &extraction.UnsupportedFormatError{Extension: ext})
		return
	}

	text, err := extraction.ExtractUpload(file, ext)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"text":      text,
		"charCount": utf8.RuneCountInString(text),
	})
}

// handleResumeAnalyze synthesizes a candidate profile from resume text. The
// analysis field carries either a structured profile or the decoder fallback.
func (s *Server) handleResumeAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if s.client == nil {
		s.pipelineError(w, ErrServiceUnavailable)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), req.ResumeText)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"analysis": analysis})
}

// handleInterviewTurn returns the next assistant utterance for the supplied
// conversation history. An empty history yields the opening line without a
// reasoning-service call, so it works even without a credential configured.
func (s *Server) handleInterviewTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if s.client == nil && len(req.History) > 0 {
		s.pipelineError(w, ErrServiceUnavailable)
		return
	}

	response, err := s.session.NextTurn(r.Context(), req.History, req.RoleID, req.Profile)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"response": response})
}

// handleInterviewEvaluate scores a completed transcript.
func (s *Server) handleInterviewEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if s.client == nil {
		s.pipelineError(w, ErrServiceUnavailable)
		return
	}

	evaluation, err := s.evaluator.Evaluate(r.Context(), req.Transcript, req.RoleID, req.Profile)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"evaluation": evaluation})
}

// handleRoles lists the selectable interview roles.
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"roles": s.roles.IDs()})
}

// decodeRequest decodes and validates a JSON request body, writing the 400
// response itself when the body is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			s.errorResponse(w, http.StatusBadRequest, "missing required field: "+fieldErrors[0].Field())
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

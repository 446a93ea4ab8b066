package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/extraction"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/parsing"
	"github.com/jonathan/resume-studio/internal/server/middleware"
	"github.com/jonathan/resume-studio/internal/types"
)

// ---------------------------------------------------------------------
// Session Handlers
// ---------------------------------------------------------------------

type CreateSessionRequest struct {
	Text string `json:"text"`
}

type SessionResponse struct {
	Session *types.Session `json:"session"`
	Token   string         `json:"token,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	sess := s.store.Create(req.Text)

	token, err := s.tokenService.Generate(sess.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}

	s.jsonResponse(w, http.StatusCreated, SessionResponse{Session: sess, Token: token})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorizedSessionID(w, r)
	if !ok {
		return
	}

	sess, err := s.store.Get(id)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{Session: sess})
}

type SetTextRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSetSessionText(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorizedSessionID(w, r)
	if !ok {
		return
	}

	var req SetTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.store.SetText(id, req.Text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{Session: sess})
}

type SetModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleSetSessionMode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorizedSessionID(w, r)
	if !ok {
		return
	}

	var req SetModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := s.store.SetMode(id, types.EditorMode(req.Mode))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResponse{Session: sess})
}

// authorizedSessionID parses the path session ID and checks it against the
// ID the bearer token was issued for. A valid token for some other session
// is a 403, not a 401.
func (s *Server) authorizedSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
		return uuid.Nil, false
	}

	tokenID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	if tokenID != id {
		s.errorResponse(w, http.StatusForbidden, "Token does not grant access to this session")
		return uuid.Nil, false
	}

	return id, true
}

// ---------------------------------------------------------------------
// Extract Handler
// ---------------------------------------------------------------------

type ExtractResponse struct {
	Text     string `json:"text"`
	FileName string `json:"file_name"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	text, err := extraction.Extract(data, header.Filename)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{Text: text, FileName: header.Filename})
}

// ---------------------------------------------------------------------
// Optimize Handler
// ---------------------------------------------------------------------

type OptimizeRequest struct {
	types.OptimizationRequest
	// SessionID optionally binds the optimization to an editor session: the
	// resume text is taken from the session when resume_text is empty, and
	// the rewritten text is applied back on success.
	SessionID string `json:"session_id,omitempty"`
}

type OptimizeResponse struct {
	Result  *types.OptimizationResult `json:"result"`
	Session *types.Session            `json:"session,omitempty"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var sessionID uuid.UUID
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
			return
		}
		if !s.authorizeBearer(w, r, id) {
			return
		}
		sessionID = id

		if req.ResumeText == "" {
			sess, err := s.store.Get(id)
			if err != nil {
				s.errorResponse(w, HTTPStatus(err), err.Error())
				return
			}
			req.ResumeText = sess.Text
		}
	}

	if err := req.OptimizationRequest.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if req.JobURL != "" {
		jobText, err := fetch.JobDescription(r.Context(), req.JobURL, nil)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		req.JobDescription = jobText
		req.JobURL = ""
	}

	// Bound concurrent LLM calls; waiting respects request cancellation.
	if err := s.optimizeSem.Acquire(r.Context(), 1); err != nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Server is busy, try again later")
		return
	}
	result, err := parsing.Optimize(r.Context(), s.llmClient, &req.OptimizationRequest)
	s.optimizeSem.Release(1)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := OptimizeResponse{Result: result}
	if sessionID != uuid.Nil {
		sess, err := s.store.ApplyResult(sessionID, result)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		resp.Session = sess
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// authorizeBearer validates the Authorization header against a session ID
// for routes that take the session in the request body instead of the path.
func (s *Server) authorizeBearer(w http.ResponseWriter, r *http.Request, id uuid.UUID) bool {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}

	tokenID, err := s.tokenService.Validate(parts[1])
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	if tokenID != id {
		s.errorResponse(w, http.StatusForbidden, "Token does not grant access to this session")
		return false
	}

	return true
}

// ---------------------------------------------------------------------
// Export Handler
// ---------------------------------------------------------------------

type ExportRequest struct {
	Text      string `json:"text,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	FileName  string `json:"file_name,omitempty"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := req.Text
	if text == "" && req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid session ID")
			return
		}
		if !s.authorizeBearer(w, r, id) {
			return
		}
		sess, err := s.store.Get(id)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		text = sess.Text
	}

	pdfBytes, err := export.Render(text)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "resume.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		fileName += ".pdf"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfBytes); err != nil {
		// Too late for an error response; the status line is already out.
		return
	}
}

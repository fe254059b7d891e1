package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string                 `json:"sessionId"`
	Message   string                 `json:"message"`
	Products  []model.Product        `json:"products"`
	Analysis  *model.ProductAnalysis `json:"analysis,omitempty"`
}

type resetRequest struct {
	SessionID string `json:"sessionId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the assistant to the storefront chat widget.
type Server struct {
	assistant Assistant
	provider  string
	log       *logrus.Logger
}

type Assistant interface {
	Chat(ctx context.Context, sessionID uuid.UUID, utterance string) (model.ChatReply, error)
	Reset(ctx context.Context, sessionID uuid.UUID) error
}

func NewServer(assistant Assistant, provider string, log *logrus.Logger) *Server {
	return &Server{
		assistant: assistant,
		provider:  provider,
		log:       log,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/assistant").Subrouter()
	api.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}
	sessionID, err := resolveSessionID(req.SessionID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	reply, err := s.assistant.Chat(r.Context(), sessionID, req.Message)
	if err != nil {
		s.log.WithError(errors.Wrap(err, "chat turn failed")).Error("internal error")
		s.writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	s.writeJSON(
		w, http.StatusOK, chatResponse{
			SessionID: sessionID.String(),
			Message:   reply.Message,
			Products:  reply.Products,
			Analysis:  reply.Analysis,
		},
	)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	if err = s.assistant.Reset(r.Context(), sessionID); err != nil {
		s.log.WithError(errors.Wrap(err, "reset failed")).Error("internal error")
		s.writeError(w, http.StatusInternalServerError, "failed to reset conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(
		w, http.StatusOK, map[string]string{
			"status":   "ok",
			"provider": s.provider,
		},
	)
}

func resolveSessionID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(raw)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

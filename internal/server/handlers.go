package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/B3RT1337/lookup-bot/internal/command"
)

const (
	maxBodyBytes = 100 << 10

	msgNoCommand   = "No command provided."
	msgInvalidBody = "Invalid request body."
)

func (s *Server) handleExecuteCommand() http.HandlerFunc {
	type request struct {
		Command string `json:"command"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req request
		if err := s.decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
			s.logger.Debug("rejecting request body", slog.String("error", err.Error()))
			s.respond(w, r, command.Result{Message: msgInvalidBody}, http.StatusBadRequest)
			return
		}
		if req.Command == "" {
			s.respond(w, r, command.Result{Message: msgNoCommand}, http.StatusBadRequest)
			return
		}

		res := s.handler.Handle(r.Context(), req.Command)
		s.respond(w, r, res, http.StatusOK)
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	type response struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, r, response{Status: "ok"}, http.StatusOK)
	}
}

// Helper methods

func (s *Server) respond(w http.ResponseWriter, _ *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.Error("failed to encode response",
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Server) decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

package fakeserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fivetwenty-io/lostfound-e2e/internal/constants"
	"github.com/go-chi/chi/v5"
)

type successResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		s.logger.Error("Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) respondData(w http.ResponseWriter, status int, message string, data interface{}) {
	s.respondJSON(w, status, successResponse{Status: status, Message: message, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.logger.Debug("Sending error response", map[string]interface{}{
		"status":  status,
		"message": message,
		"method":  r.Method,
		"path":    r.URL.Path,
	})

	s.respondJSON(w, status, errorResponse{Status: status, Error: message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer func() { _ = r.Body.Close() }()

	return json.NewDecoder(r.Body).Decode(v)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

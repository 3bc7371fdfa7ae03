package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
	"github.com/secmon-lab/brolife/pkg/utils/errutil"
	"github.com/secmon-lab/brolife/pkg/utils/safe"
)

const (
	maxBodySize = 1 << 20
	maxLimit    = 100
)

type setupUserRequest struct {
	UserID      string   `json:"user_id"`
	PersonaName string   `json:"persona_name"`
	BroName     string   `json:"bro_name"`
	Goals       []string `json:"goals"`
	Preferences string   `json:"preferences"`
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type timetableRequest struct {
	UserID      string   `json:"user_id"`
	Goals       []string `json:"goals"`
	Preferences string   `json:"preferences"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type timetableResponse struct {
	Timetable model.SchedulePayload `json:"timetable"`
	Message   string                `json:"message"`
	Hint      string                `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Encode(r.Context(), w, v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, errutil.HTTPStatus(err))
}

// decodeBody reads a JSON body into v. Malformed bodies are invalid input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "malformed request body", goerr.V("cause", err.Error()))
	}
	return nil
}

func userIDOrDefault(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return model.DefaultUserID
	}
	return id
}

// parseLimit reads the limit query value. Absent means the store default;
// given values are clamped to 1..100.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(model.ErrInvalidInput, "limit must be an integer", goerr.V("limit", raw))
	}
	return min(max(n, 1), maxLimit), nil
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Brolife API is running! 🎯",
		"version": s.version,
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, goerr.Wrap(model.ErrNotFound, "route not found",
		goerr.V("method", r.Method),
		goerr.V("path", r.URL.Path),
	))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": clock.Now(r.Context()).UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) setupUserHandler(w http.ResponseWriter, r *http.Request) {
	var req setupUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	persona := req.PersonaName
	if persona == "" {
		persona = req.BroName
	}

	msg, err := s.uc.Profile.Setup(r.Context(), &model.UserProfile{
		UserID:      userIDOrDefault(req.UserID),
		PersonaName: persona,
		Goals:       req.Goals,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	view, err := s.uc.Profile.Get(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := s.uc.Chat.Reply(r.Context(), userIDOrDefault(req.UserID), req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reply)
}

func (s *Server) generateTimetableHandler(w http.ResponseWriter, r *http.Request) {
	var req timetableRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tt, err := s.uc.Timetable.Generate(r.Context(), userIDOrDefault(req.UserID), req.Goals, req.Preferences)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, timetableResponse{Timetable: tt.Payload, Message: tt.Message, Hint: tt.Hint})
}

func (s *Server) chatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := s.uc.History.Chats(r.Context(), chi.URLParam(r, "user_id"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"history": records})
}

func (s *Server) timetablesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	records, err := s.uc.History.Schedules(r.Context(), chi.URLParam(r, "user_id"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"timetables": records})
}

func (s *Server) overviewHandler(w http.ResponseWriter, r *http.Request) {
	history, err := s.uc.History.Overview(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

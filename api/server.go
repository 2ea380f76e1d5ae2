package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cuvinte/scrabble-server/game/dictionary"
	"github.com/cuvinte/scrabble-server/game/engine"
	"github.com/cuvinte/scrabble-server/game/service"
	"github.com/cuvinte/scrabble-server/metrics"
	"github.com/cuvinte/scrabble-server/storage"
	"github.com/cuvinte/scrabble-server/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	log     zerolog.Logger
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub, log zerolog.Logger) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		log:     log,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/join", s.handleJoinSession).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")

	// Dictionaries
	api.HandleFunc("/dictionaries", s.handleListDictionaries).Methods("GET")
	api.HandleFunc("/dictionaries/{id}/check", s.handleCheckWord).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Metrics
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestMiddleware logs every request and records Prometheus counters.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)
	respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  code,
	})
}

// statusForError maps domain errors to HTTP statuses and stable codes.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, engine.ErrUnknownPlayer):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, dictionary.ErrDictionaryNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, engine.ErrSessionFull):
		return http.StatusConflict, "session_full"
	case errors.Is(err, engine.ErrNotYourTurn):
		return http.StatusConflict, "not_your_turn"
	case errors.Is(err, engine.ErrInvalidSettings):
		return http.StatusBadRequest, "invalid_settings"
	case errors.Is(err, engine.ErrInvalidPlacement):
		return http.StatusBadRequest, "invalid_placement"
	case errors.Is(err, dictionary.ErrEmptyWord):
		return http.StatusBadRequest, "invalid_word"
	case errors.Is(err, service.ErrStorageConflict):
		return http.StatusConflict, "storage_conflict"
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable, "storage_unavailable"
	case errors.Is(err, engine.ErrEmptyTurnOrder):
		return http.StatusInternalServerError, "invariant_violation"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerName string          `json:"player_name"`
		PlayerID   string          `json:"player_id"`
		Settings   engine.Settings `json:"settings"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	created, err := s.service.CreateSession(r.Context(), req.PlayerName, req.PlayerID, req.Settings)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(ids),
		"sessions": ids,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.service.GetState(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleJoinSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		PlayerName string `json:"player_name"`
		PlayerID   string `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
			"code":  "invalid_body",
		})
		return
	}

	joined, err := s.service.JoinSession(r.Context(), sessionID, req.PlayerName, req.PlayerID)
	if err != nil {
		respondError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, joined.Session)
	}

	respondJSON(w, http.StatusOK, joined)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req struct {
		PlayerID   string             `json:"player_id"`
		Placements []engine.Placement `json:"placements"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
			"code":  "invalid_body",
		})
		return
	}

	session, err := s.service.ApplyMove(r.Context(), sessionID, req.PlayerID, req.Placements)
	if err != nil {
		respondError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToSession(sessionID, session)
	}

	respondJSON(w, http.StatusOK, session)
}

// Dictionary Handlers

func (s *Server) handleListDictionaries(w http.ResponseWriter, r *http.Request) {
	infos, err := s.service.ListDictionaries(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":        len(infos),
		"dictionaries": infos,
	})
}

func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	dictionaryID := mux.Vars(r)["id"]
	word := r.URL.Query().Get("word")

	check, err := s.service.CheckWord(r.Context(), word, dictionaryID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, check)
}

// Health Handler

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, err := s.service.Health(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, health)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	if _, err := s.service.GetState(r.Context(), sessionID); err != nil {
		http.Error(w, "invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

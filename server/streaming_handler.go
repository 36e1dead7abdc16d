package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/cache"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/live"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CreateStreamingRequest starts a live session.
type CreateStreamingRequest struct {
	Name string `json:"name"`
}

// ListStreamingsHandler returns every currently live session.
func (h *APIHandler) ListStreamingsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, err := cache.ListSessions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

// CreateStreamingHandler opens a live session for the caller. The session
// lives in Redis with a TTL; the minted token expires together with it.
func (h *APIHandler) CreateStreamingHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	if !role.CanStream() {
		respondError(w, access.ErrForbidden)
		return
	}

	var req CreateStreamingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	name, _ := GetNameFromContext(r.Context())
	ttl := time.Duration(h.cfg.StreamTTLMinutes) * time.Minute

	session := &model.LiveSession{
		ID:         uuid.NewString(),
		ArtistID:   userID,
		ArtistName: name,
		Name:       req.Name,
		StartedAt:  time.Now(),
	}

	token, err := h.tokens.Mint(session.ID, userID, ttl)
	if err != nil {
		respondError(w, err)
		return
	}
	session.Token = token

	if err := cache.PutSession(r.Context(), session, int(ttl.Seconds())); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(live.Event{
		Type:       live.EventStarted,
		SessionID:  session.ID,
		ArtistID:   session.ArtistID,
		ArtistName: session.ArtistName,
		Name:       session.Name,
		Timestamp:  session.StartedAt.Unix(),
	})

	logger.Info("live session started",
		logger.String("sessionId", session.ID),
		logger.String("artistId", userID),
	)
	respondJSON(w, http.StatusCreated, session)
}

// EndStreamingHandler ends a live session. Only the artist who opened it or
// an admin may close it.
func (h *APIHandler) EndStreamingHandler(w http.ResponseWriter, r *http.Request) {
	userID, role := requester(r)
	sessionID := mux.Vars(r)["session_id"]

	session, err := cache.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, err)
		return
	}

	if session.ArtistID != userID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := cache.DeleteSession(r.Context(), sessionID); err != nil {
		respondError(w, err)
		return
	}

	h.hub.Broadcast(live.Event{
		Type:      live.EventEnded,
		SessionID: session.ID,
		ArtistID:  session.ArtistID,
		Timestamp: time.Now().Unix(),
	})

	logger.Info("live session ended",
		logger.String("sessionId", session.ID),
		logger.String("artistId", session.ArtistID),
	)
	w.WriteHeader(http.StatusNoContent)
}

// StreamingEventsHandler upgrades the connection and streams lifecycle
// events to the client.
func (h *APIHandler) StreamingEventsHandler(w http.ResponseWriter, r *http.Request) {
	h.hub.ServeWS(w, r)
}

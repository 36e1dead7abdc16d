package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/storage"

	"github.com/gorilla/mux"
)

// ListUsersHandler lists every account. Admin only.
func (h *APIHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	_, role := requester(r)
	if !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUserHandler fetches one account profile.
func (h *APIHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUserHandler patches an account. Self or admin.
func (h *APIHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	callerID, role := requester(r)
	if targetID != callerID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), targetID)
	if err != nil {
		respondError(w, err)
		return
	}

	patch.Apply(user)

	if err := h.users.Update(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("user updated", logger.String("userId", targetID))
	respondJSON(w, http.StatusOK, user)
}

// DeleteUserHandler removes an account. Self or admin.
func (h *APIHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	callerID, role := requester(r)
	if targetID != callerID && !role.CanDeleteEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	if err := h.users.Delete(r.Context(), targetID); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("user deleted", logger.String("userId", targetID))
	w.WriteHeader(http.StatusNoContent)
}

// AvatarURLHandler hands out a presigned upload URL for the caller's profile
// picture. The blob goes straight to object storage; only the key is recorded.
func (h *APIHandler) AvatarURLHandler(w http.ResponseWriter, r *http.Request) {
	targetID := mux.Vars(r)["id"]
	callerID, role := requester(r)
	if targetID != callerID && !role.CanEditEverything() {
		respondError(w, access.ErrForbidden)
		return
	}

	user, err := h.users.GetByID(r.Context(), targetID)
	if err != nil {
		respondError(w, err)
		return
	}

	key := "avatars/" + targetID
	url, err := storage.PresignedPutURL(r.Context(), key, 15*time.Minute)
	if err != nil {
		respondError(w, err)
		return
	}

	if user.AvatarKey != key {
		user.AvatarKey = key
		if err := h.users.Update(r.Context(), user); err != nil {
			respondError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
}

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
)

// subPrices maps subscription level to its monthly price. Level 0 is the
// free tier and cannot be purchased, only reverted to.
var subPrices = map[int]int{
	1: 100,
	2: 250,
	3: 500,
}

const subPeriod = 30 * 24 * time.Hour

// UpgradeSubscriptionRequest buys a subscription level for the caller.
type UpgradeSubscriptionRequest struct {
	Level int `json:"level"`
}

// SubscriptionResponse reports the caller's current subscription.
type SubscriptionResponse struct {
	Level   int        `json:"level"`
	Expires *time.Time `json:"expires,omitempty"`
}

// GetSubscriptionHandler returns the caller's subscription status.
func (h *APIHandler) GetSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := requester(r)

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SubscriptionResponse{
		Level:   user.SubLevel,
		Expires: user.SubExpires,
	})
}

// UpgradeSubscriptionHandler charges the caller's wallet and raises the
// subscription level. The charge happens before the level is recorded, so a
// rejected payment leaves the account untouched.
func (h *APIHandler) UpgradeSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := requester(r)

	var req UpgradeSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	price, ok := subPrices[req.Level]
	if !ok {
		http.Error(w, "Invalid subscription level", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.payments.Debit(r.Context(), user.Wallet, price); err != nil {
		respondError(w, err)
		return
	}

	expires := time.Now().Add(subPeriod)
	if err := h.users.SetSubscription(r.Context(), userID, req.Level, &expires); err != nil {
		respondError(w, err)
		return
	}

	logger.Info("subscription upgraded",
		logger.String("userId", userID),
		logger.Int("level", req.Level),
	)
	respondJSON(w, http.StatusOK, SubscriptionResponse{
		Level:   req.Level,
		Expires: &expires,
	})
}

// SweepSubscriptionsHandler reverts every expired subscription to the free
// tier. Admin only; meant to be hit by a scheduler.
func (h *APIHandler) SweepSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	_, role := requester(r)
	if !role.CanRevoke() {
		respondError(w, access.ErrForbidden)
		return
	}

	n, err := h.users.SweepExpired(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("expired subscriptions reverted", logger.Int64("count", n))
	respondJSON(w, http.StatusOK, map[string]int64{"reverted": n})
}

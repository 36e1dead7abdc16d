package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/config"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/auth"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/live"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/payments"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/repository"

	"github.com/gorilla/mux"
)

// APIHandler handles all API requests.
type APIHandler struct {
	cfg       *config.Config
	users     repository.UserRepository
	songs     repository.SongRepository
	albums    repository.AlbumRepository
	playlists repository.PlaylistRepository
	comments  repository.CommentRepository
	reviews   repository.ReviewRepository
	favorites repository.FavoriteRepository
	payments  payments.Gateway
	tokens    live.TokenProvider
	hub       *live.Hub
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	cfg *config.Config,
	users repository.UserRepository,
	songs repository.SongRepository,
	albums repository.AlbumRepository,
	playlists repository.PlaylistRepository,
	comments repository.CommentRepository,
	reviews repository.ReviewRepository,
	favorites repository.FavoriteRepository,
	gateway payments.Gateway,
	tokens live.TokenProvider,
	hub *live.Hub,
) *APIHandler {
	return &APIHandler{
		cfg:       cfg,
		users:     users,
		songs:     songs,
		albums:    albums,
		playlists: playlists,
		comments:  comments,
		reviews:   reviews,
		favorites: favorites,
		payments:  gateway,
		tokens:    tokens,
		hub:       hub,
	}
}

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxName   ctxKey = "name"
	ctxRole   ctxKey = "role"
)

// AuthMiddleware checks the session token and resolves the caller's role from
// the X-Role header set by the identity layer. A malformed role fails fast
// with 422 before any database access.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		role, err := access.ParseRole(r.Header.Get("X-Role"))
		if err != nil {
			respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxName, claims.Name)
		ctx = context.WithValue(ctx, ctxRole, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(ctxUserID).(string)
	if !ok {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetNameFromContext extracts the display name from the request context.
func GetNameFromContext(ctx context.Context) (string, error) {
	name, ok := ctx.Value(ctxName).(string)
	if !ok {
		return "", fmt.Errorf("name not found in context")
	}
	return name, nil
}

// GetRoleFromContext extracts the caller's role from the request context.
func GetRoleFromContext(ctx context.Context) access.Role {
	role, ok := ctx.Value(ctxRole).(access.Role)
	if !ok {
		return access.Listener
	}
	return role
}

// requester bundles the identity the policy layer works with.
func requester(r *http.Request) (userID string, role access.Role) {
	userID, _ = GetUserIDFromContext(r.Context())
	return userID, GetRoleFromContext(r.Context())
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", logger.ErrorField(err))
		}
	}
}

// respondError maps the policy-layer error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, access.ErrInvalidRole), errors.Is(err, access.ErrInvalidPageSize):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, access.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, access.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, payments.ErrPaymentRejected):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		logger.Error("internal error", logger.ErrorField(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// listParams reads the common listing query parameters. The creator filter
// accepts "me" as shorthand for the caller's own uid; an explicit own-id
// listing is the one place the visibility scope shows the caller's blocked
// resources to any role.
func (h *APIHandler) listParams(r *http.Request) (repository.ListParams, error) {
	userID, role := requester(r)
	p := repository.ListParams{
		Role:        role,
		RequesterID: userID,
		Query:       r.URL.Query().Get("q"),
		Limit:       h.cfg.DefaultPageSize,
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: %q", access.ErrInvalidPageSize, raw)
		}
		p.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// Malformed pagination params get the same 422 treatment as a bad limit.
			return p, fmt.Errorf("bad offset %q: %w", raw, access.ErrInvalidPageSize)
		}
		p.Offset = &offset
	}

	if creator := r.URL.Query().Get("creator"); creator != "" {
		if creator == "me" {
			p.CreatorID = userID
		} else {
			p.CreatorID = creator
		}
	}

	return p, nil
}

// pageWindow reads limit/offset only, for listings without search or creator
// filters.
func (h *APIHandler) pageWindow(r *http.Request) (int, *int64, error) {
	p, err := h.listParams(r)
	if err != nil {
		return 0, nil, err
	}
	return p.Limit, p.Offset, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", raw, access.ErrNotFound)
	}
	return id, nil
}

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/config"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/auth"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/live"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/db"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/logger"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/payments"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/repository"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/storage"

	"github.com/gorilla/mux"
)

// Migrations lists every persisted model, in dependency order.
var Migrations = []interface{}{
	&model.User{},
	&model.Album{},
	&model.Song{},
	&model.Playlist{},
	&model.PlaylistSong{},
	&model.PlaylistColab{},
	&model.Comment{},
	&model.Review{},
	&model.FavoriteSong{},
	&model.FavoriteAlbum{},
	&model.FavoritePlaylist{},
}

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	auth.Init(cfg.JWTSecret)

	if err := storage.Init(cfg); err != nil {
		logger.Fatal("failed to initialize object storage", logger.ErrorField(err))
	}

	if err := db.Connect(cfg); err != nil {
		logger.Fatal("failed to connect to database", logger.ErrorField(err))
	}
	defer db.Close()

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("failed to connect to redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()

	if err := db.AutoMigrate(Migrations...); err != nil {
		logger.Fatal("failed to migrate schema", logger.ErrorField(err))
	}

	userRepo := repository.NewUserRepository(db.DB)
	songRepo := repository.NewSongRepository(db.DB)
	albumRepo := repository.NewAlbumRepository(db.DB)
	playlistRepo := repository.NewPlaylistRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)
	reviewRepo := repository.NewReviewRepository(db.DB)
	favoriteRepo := repository.NewFavoriteRepository(db.DB)

	gateway := payments.NewHTTPGateway(cfg.PaymentsURL, cfg.PaymentsAPIKey)
	tokens := live.NewHMACProvider(cfg.StreamSecret)
	hub := live.NewHub()

	apiHandler := NewAPIHandler(cfg, userRepo, songRepo, albumRepo, playlistRepo,
		commentRepo, reviewRepo, favoriteRepo, gateway, tokens, hub)

	router := NewRouter(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("server stopped")
}

// NewRouter wires every API route onto a gorilla/mux router.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()

	router.Use(corsMiddleware)

	// Authentication
	router.HandleFunc("/api/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)

	// Users
	router.HandleFunc("/api/users", h.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/users", h.AuthMiddleware(h.ListUsersHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", h.AuthMiddleware(h.GetUserHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}", h.AuthMiddleware(h.UpdateUserHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/users/{id}", h.AuthMiddleware(h.DeleteUserHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/users/{id}/avatar", h.AuthMiddleware(h.AvatarURLHandler)).Methods(http.MethodPut)

	// Songs
	router.HandleFunc("/api/songs", h.AuthMiddleware(h.ListSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", h.AuthMiddleware(h.CreateSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", h.AuthMiddleware(h.GetSongHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/songs/{id}", h.AuthMiddleware(h.UpdateSongHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/songs/{id}", h.AuthMiddleware(h.DeleteSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/songs/{id}/block", h.AuthMiddleware(h.BlockSongHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/songs/{id}/file", h.AuthMiddleware(h.SongFileURLHandler)).Methods(http.MethodGet, http.MethodPut)

	// Albums
	router.HandleFunc("/api/albums", h.AuthMiddleware(h.ListAlbumsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/albums", h.AuthMiddleware(h.CreateAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{id}", h.AuthMiddleware(h.GetAlbumHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}", h.AuthMiddleware(h.UpdateAlbumHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/albums/{id}", h.AuthMiddleware(h.DeleteAlbumHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/albums/{id}/block", h.AuthMiddleware(h.BlockAlbumHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/albums/{id}/cover", h.AuthMiddleware(h.AlbumCoverURLHandler)).Methods(http.MethodGet, http.MethodPut)

	// Playlists
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.ListPlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", h.AuthMiddleware(h.CreatePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.GetPlaylistHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.UpdatePlaylistHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/playlists/{id}", h.AuthMiddleware(h.DeletePlaylistHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/block", h.AuthMiddleware(h.BlockPlaylistHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}/songs", h.AuthMiddleware(h.AddPlaylistSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{song_id}", h.AuthMiddleware(h.RemovePlaylistSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/colabs", h.AuthMiddleware(h.AddPlaylistColabHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/colabs/{user_id}", h.AuthMiddleware(h.RemovePlaylistColabHandler)).Methods(http.MethodDelete)

	// Comments
	router.HandleFunc("/api/albums/{id}/comments", h.AuthMiddleware(h.ListAlbumCommentsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}/comments", h.AuthMiddleware(h.CreateAlbumCommentHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/comments/{id}", h.AuthMiddleware(h.UpdateCommentHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/comments/{id}", h.AuthMiddleware(h.DeleteCommentHandler)).Methods(http.MethodDelete)

	// Reviews
	router.HandleFunc("/api/albums/{id}/reviews", h.AuthMiddleware(h.ListAlbumReviewsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/albums/{id}/reviews", h.AuthMiddleware(h.CreateAlbumReviewHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/albums/{id}/reviews/mine", h.AuthMiddleware(h.GetMyAlbumReviewHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/reviews/{id}", h.AuthMiddleware(h.UpdateReviewHandler)).Methods(http.MethodPatch)
	router.HandleFunc("/api/reviews/{id}", h.AuthMiddleware(h.DeleteReviewHandler)).Methods(http.MethodDelete)

	// Favorites
	router.HandleFunc("/api/favorites/songs", h.AuthMiddleware(h.ListFavoriteSongsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/songs", h.AuthMiddleware(h.AddFavoriteSongHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/songs/{song_id}", h.AuthMiddleware(h.RemoveFavoriteSongHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/favorites/albums", h.AuthMiddleware(h.ListFavoriteAlbumsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/albums", h.AuthMiddleware(h.AddFavoriteAlbumHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/albums/{album_id}", h.AuthMiddleware(h.RemoveFavoriteAlbumHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/favorites/playlists", h.AuthMiddleware(h.ListFavoritePlaylistsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites/playlists", h.AuthMiddleware(h.AddFavoritePlaylistHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/playlists/{playlist_id}", h.AuthMiddleware(h.RemoveFavoritePlaylistHandler)).Methods(http.MethodDelete)

	// Live streamings
	router.HandleFunc("/api/streamings", h.AuthMiddleware(h.ListStreamingsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/streamings", h.AuthMiddleware(h.CreateStreamingHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/streamings/{session_id}", h.AuthMiddleware(h.EndStreamingHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/streamings/ws", h.StreamingEventsHandler).Methods(http.MethodGet)

	// Subscriptions
	router.HandleFunc("/api/subscriptions", h.AuthMiddleware(h.GetSubscriptionHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/subscriptions", h.AuthMiddleware(h.UpgradeSubscriptionHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/subscriptions/expired", h.AuthMiddleware(h.SweepSubscriptionsHandler)).Methods(http.MethodDelete)

	return router
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Role")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

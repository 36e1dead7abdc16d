package repository

import (
	"context"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// FavoriteRepository defines favorite (song/album/playlist) data operations.
// Listings join into the resource tables and apply the visibility scope, so a
// favorited resource that got blocked disappears from the listing without the
// favorite row being touched.
type FavoriteRepository interface {
	AddSong(ctx context.Context, userID string, songID int64) error
	RemoveSong(ctx context.Context, userID string, songID int64) error
	ListSongs(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Song], error)

	AddAlbum(ctx context.Context, userID string, albumID int64) error
	RemoveAlbum(ctx context.Context, userID string, albumID int64) error
	ListAlbums(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Album], error)

	AddPlaylist(ctx context.Context, userID string, playlistID int64) error
	RemovePlaylist(ctx context.Context, userID string, playlistID int64) error
	ListPlaylists(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Playlist], error)
}

type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a GORM-backed favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

func (r *gormFavoriteRepository) AddSong(ctx context.Context, userID string, songID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.FavoriteSong{}).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(&model.FavoriteSong{UserID: userID, SongID: songID}).Error
}

func (r *gormFavoriteRepository) RemoveSong(ctx context.Context, userID string, songID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&model.FavoriteSong{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormFavoriteRepository) ListSongs(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Song], error) {
	q := r.db.WithContext(ctx).Model(&model.Song{}).
		Joins("JOIN favorite_songs fs ON fs.song_id = songs.id").
		Where("fs.user_id = ?", userID).
		Scopes(access.Scope(role, userID))
	return access.Paginate[model.Song](q, "songs.id", limit, offset)
}

func (r *gormFavoriteRepository) AddAlbum(ctx context.Context, userID string, albumID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.FavoriteAlbum{}).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(&model.FavoriteAlbum{UserID: userID, AlbumID: albumID}).Error
}

func (r *gormFavoriteRepository) RemoveAlbum(ctx context.Context, userID string, albumID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Delete(&model.FavoriteAlbum{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormFavoriteRepository) ListAlbums(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Album], error) {
	q := r.db.WithContext(ctx).Model(&model.Album{}).
		Joins("JOIN favorite_albums fa ON fa.album_id = albums.id").
		Where("fa.user_id = ?", userID).
		Scopes(access.Scope(role, userID))
	return access.Paginate[model.Album](q, "albums.id", limit, offset)
}

func (r *gormFavoriteRepository) AddPlaylist(ctx context.Context, userID string, playlistID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.FavoritePlaylist{}).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(&model.FavoritePlaylist{UserID: userID, PlaylistID: playlistID}).Error
}

func (r *gormFavoriteRepository) RemovePlaylist(ctx context.Context, userID string, playlistID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Delete(&model.FavoritePlaylist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormFavoriteRepository) ListPlaylists(ctx context.Context, userID string, role access.Role, limit int, offset *int64) (*access.Page[model.Playlist], error) {
	q := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Joins("JOIN favorite_playlists fp ON fp.playlist_id = playlists.id").
		Where("fp.user_id = ?", userID).
		Scopes(access.Scope(role, userID))
	return access.Paginate[model.Playlist](q, "playlists.id", limit, offset)
}

package repository

import (
	"context"
	"errors"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// ErrDuplicate signals a uniqueness conflict (song already in playlist,
// collaborator already added, review already posted).
var ErrDuplicate = errors.New("already exists")

// PlaylistRepository defines playlist data operations.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Playlist, error)
	List(ctx context.Context, p ListParams) (*access.Page[model.Playlist], error)
	Update(ctx context.Context, playlist *model.Playlist) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	Delete(ctx context.Context, id int64) error

	AddSong(ctx context.Context, playlistID, songID int64) error
	RemoveSong(ctx context.Context, playlistID, songID int64) error
	// ListSongs returns all member songs in position order, regardless of
	// visibility. Callers drop invisible entries at serialization time.
	ListSongs(ctx context.Context, playlistID int64) ([]model.Song, error)

	AddColab(ctx context.Context, playlistID int64, userID string) error
	RemoveColab(ctx context.Context, playlistID int64, userID string) error
	ListColabs(ctx context.Context, playlistID int64) ([]string, error)
	IsColab(ctx context.Context, playlistID int64, userID string) (bool, error)
}

type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository creates a GORM-backed playlist repository.
func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Create(playlist).Error
}

func (r *gormPlaylistRepository) GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.WithContext(ctx).First(&playlist, id).Error; err != nil {
		return nil, notFound(err)
	}
	if !access.Visible(playlist.Blocked, playlist.CreatorID, role, requesterID) {
		return nil, access.ErrNotFound
	}
	return &playlist, nil
}

func (r *gormPlaylistRepository) List(ctx context.Context, p ListParams) (*access.Page[model.Playlist], error) {
	q := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Scopes(
			access.Scope(p.Role, p.RequesterID),
			access.Search(p.Query, "name"),
		)
	if p.CreatorID != "" {
		q = q.Where("creator_id = ?", p.CreatorID)
	}
	return access.Paginate[model.Playlist](q, "id", p.Limit, p.Offset)
}

func (r *gormPlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	return r.db.WithContext(ctx).Save(playlist).Error
}

func (r *gormPlaylistRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res := r.db.WithContext(ctx).Model(&model.Playlist{}).
		Where("id = ?", id).
		Update("blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormPlaylistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistSong{}).Error; err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistColab{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Playlist{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return access.ErrNotFound
		}
		return nil
	})
}

func (r *gormPlaylistRepository) AddSong(ctx context.Context, playlistID, songID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlaylistSong{}).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	// Append at the end.
	var maxPos int
	row := r.db.WithContext(ctx).Model(&model.PlaylistSong{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Row()
	if err := row.Scan(&maxPos); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&model.PlaylistSong{
		PlaylistID: playlistID,
		SongID:     songID,
		Position:   maxPos + 1,
	}).Error
}

func (r *gormPlaylistRepository) RemoveSong(ctx context.Context, playlistID, songID int64) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND song_id = ?", playlistID, songID).
		Delete(&model.PlaylistSong{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormPlaylistRepository) ListSongs(ctx context.Context, playlistID int64) ([]model.Song, error) {
	var songs []model.Song
	err := r.db.WithContext(ctx).Model(&model.Song{}).
		Joins("JOIN playlist_songs ps ON ps.song_id = songs.id").
		Where("ps.playlist_id = ?", playlistID).
		Order("ps.position ASC").
		Find(&songs).Error
	return songs, err
}

func (r *gormPlaylistRepository) AddColab(ctx context.Context, playlistID int64, userID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.PlaylistColab{}).
		Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}

	return r.db.WithContext(ctx).Create(&model.PlaylistColab{
		PlaylistID: playlistID,
		UserID:     userID,
	}).Error
}

func (r *gormPlaylistRepository) RemoveColab(ctx context.Context, playlistID int64, userID string) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Delete(&model.PlaylistColab{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (r *gormPlaylistRepository) ListColabs(ctx context.Context, playlistID int64) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.PlaylistColab{}).
		Where("playlist_id = ?", playlistID).
		Order("id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *gormPlaylistRepository) IsColab(ctx context.Context, playlistID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PlaylistColab{}).
		Where("playlist_id = ? AND user_id = ?", playlistID, userID).
		Count(&count).Error
	return count > 0, err
}

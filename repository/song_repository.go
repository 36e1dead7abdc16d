package repository

import (
	"context"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// SongRepository defines song data operations.
type SongRepository interface {
	Create(ctx context.Context, song *model.Song) error
	// GetByID enforces visibility: an existing song the caller may not see is
	// reported as access.ErrNotFound.
	GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Song, error)
	List(ctx context.Context, p ListParams) (*access.Page[model.Song], error)
	// ListByAlbum returns all songs of an album regardless of visibility.
	// Callers drop invisible entries at serialization time.
	ListByAlbum(ctx context.Context, albumID int64) ([]model.Song, error)
	Update(ctx context.Context, song *model.Song) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	Delete(ctx context.Context, id int64) error
}

type gormSongRepository struct {
	db *gorm.DB
}

// NewSongRepository creates a GORM-backed song repository.
func NewSongRepository(db *gorm.DB) SongRepository {
	return &gormSongRepository{db: db}
}

func (r *gormSongRepository) Create(ctx context.Context, song *model.Song) error {
	return r.db.WithContext(ctx).Create(song).Error
}

func (r *gormSongRepository) GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Song, error) {
	var song model.Song
	if err := r.db.WithContext(ctx).First(&song, id).Error; err != nil {
		return nil, notFound(err)
	}
	if !access.Visible(song.Blocked, song.CreatorID, role, requesterID) {
		return nil, access.ErrNotFound
	}
	return &song, nil
}

func (r *gormSongRepository) List(ctx context.Context, p ListParams) (*access.Page[model.Song], error) {
	q := r.db.WithContext(ctx).Model(&model.Song{}).
		Scopes(
			access.Scope(p.Role, p.RequesterID),
			access.Search(p.Query, "name", "genre", "artists"),
		)
	if p.CreatorID != "" {
		q = q.Where("creator_id = ?", p.CreatorID)
	}
	return access.Paginate[model.Song](q, "id", p.Limit, p.Offset)
}

func (r *gormSongRepository) ListByAlbum(ctx context.Context, albumID int64) ([]model.Song, error) {
	var songs []model.Song
	err := r.db.WithContext(ctx).
		Where("album_id = ?", albumID).
		Order("id ASC").
		Find(&songs).Error
	return songs, err
}

func (r *gormSongRepository) Update(ctx context.Context, song *model.Song) error {
	return r.db.WithContext(ctx).Save(song).Error
}

func (r *gormSongRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res := r.db.WithContext(ctx).Model(&model.Song{}).
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

func (r *gormSongRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Song{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// AlbumRepository defines album data operations.
type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Album, error)
	List(ctx context.Context, p ListParams) (*access.Page[model.Album], error)
	Update(ctx context.Context, album *model.Album) error
	SetBlocked(ctx context.Context, id int64, blocked bool) error
	Delete(ctx context.Context, id int64) error
}

type gormAlbumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository creates a GORM-backed album repository.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &gormAlbumRepository{db: db}
}

func (r *gormAlbumRepository) Create(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *gormAlbumRepository) GetByID(ctx context.Context, id int64, role access.Role, requesterID string) (*model.Album, error) {
	var album model.Album
	if err := r.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return nil, notFound(err)
	}
	if !access.Visible(album.Blocked, album.CreatorID, role, requesterID) {
		return nil, access.ErrNotFound
	}
	return &album, nil
}

func (r *gormAlbumRepository) List(ctx context.Context, p ListParams) (*access.Page[model.Album], error) {
	q := r.db.WithContext(ctx).Model(&model.Album{}).
		Scopes(
			access.Scope(p.Role, p.RequesterID),
			access.Search(p.Query, "name", "genre"),
		)
	if p.CreatorID != "" {
		q = q.Where("creator_id = ?", p.CreatorID)
	}
	return access.Paginate[model.Album](q, "id", p.Limit, p.Offset)
}

func (r *gormAlbumRepository) Update(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Save(album).Error
}

func (r *gormAlbumRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res := r.db.WithContext(ctx).Model(&model.Album{}).
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

func (r *gormAlbumRepository) Delete(ctx context.Context, id int64) error {
	// Songs of a deleted album survive as singles; only the album row and the
	// pointer to it go away.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Song{}).
			Where("album_id = ?", id).
			Update("album_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Album{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return access.ErrNotFound
		}
		return nil
	})
}

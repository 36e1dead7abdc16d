package repository

import (
	"context"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// CommentRepository defines album comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// ListByAlbum pages the album's comment thread by comment id.
	ListByAlbum(ctx context.Context, albumID int64, limit int, offset *int64) (*access.Page[model.Comment], error)
	Update(ctx context.Context, comment *model.Comment) error
	// Tombstone clears the comment text but keeps the row so replies stay
	// anchored.
	Tombstone(ctx context.Context, id int64) error
}

type gormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a GORM-backed comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *gormCommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (r *gormCommentRepository) ListByAlbum(ctx context.Context, albumID int64, limit int, offset *int64) (*access.Page[model.Comment], error) {
	q := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("album_id = ?", albumID)
	return access.Paginate[model.Comment](q, "id", limit, offset)
}

func (r *gormCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *gormCommentRepository) Tombstone(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Update("text", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

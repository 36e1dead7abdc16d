package repository

import (
	"context"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"gorm.io/gorm"
)

// ReviewRepository defines album review data operations.
type ReviewRepository interface {
	// Create fails with ErrDuplicate if the reviewer already reviewed the album.
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	GetByAlbumAndReviewer(ctx context.Context, albumID int64, reviewer string) (*model.Review, error)
	ListByAlbum(ctx context.Context, albumID int64, limit int, offset *int64) (*access.Page[model.Review], error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int64) error
}

type gormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a GORM-backed review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &gormReviewRepository{db: db}
}

func (r *gormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("album_id = ? AND reviewer = ?", review.AlbumID, review.Reviewer).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *gormReviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (r *gormReviewRepository) GetByAlbumAndReviewer(ctx context.Context, albumID int64, reviewer string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("album_id = ? AND reviewer = ?", albumID, reviewer).
		First(&review).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (r *gormReviewRepository) ListByAlbum(ctx context.Context, albumID int64, limit int, offset *int64) (*access.Page[model.Review], error) {
	q := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("album_id = ?", albumID)
	return access.Paginate[model.Review](q, "id", limit, offset)
}

func (r *gormReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *gormReviewRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return access.ErrNotFound
	}
	return nil
}

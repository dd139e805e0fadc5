package repository

import (
	"context"
	"time"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type FeedbackEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	FullName  string    `db:"full_name"  gorm:"column:full_name;not null"`
	Feedback  string    `db:"feedback"   gorm:"column:feedback;not null"`
	Rating    int       `db:"rating"     gorm:"column:rating;not null"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (FeedbackEntity) TableName() string {
	return "feedback"
}

func toFeedbackEntity(f *model.Feedback) *FeedbackEntity {
	if f == nil {
		return nil
	}
	return &FeedbackEntity{
		ID:        f.ID,
		FullName:  f.FullName,
		Feedback:  f.Feedback,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
	}
}

func toFeedbackModel(e *FeedbackEntity) *model.Feedback {
	if e == nil {
		return nil
	}
	return &model.Feedback{
		ID:        e.ID,
		FullName:  e.FullName,
		Feedback:  e.Feedback,
		Rating:    e.Rating,
		CreatedAt: e.CreatedAt,
	}
}

type FeedbackRepository struct {
	db *pg.DB
}

func NewFeedbackRepository(db *pg.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) (*model.Feedback, error) {
	entity := toFeedbackEntity(feedback)
	entity.ID = 0
	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toFeedbackModel(entity), nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*model.Feedback, error) {
	var entities []*FeedbackEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	models := make([]*model.Feedback, len(entities))
	for i, e := range entities {
		models[i] = toFeedbackModel(e)
	}
	return models, nil
}

// AverageRating aggregates in the database so the dashboard number stays
// correct regardless of how much feedback accumulates.
func (r *FeedbackRepository) AverageRating(ctx context.Context) (*model.RatingSummary, error) {
	var summary model.RatingSummary
	err := r.db.Read(ctx).WithContext(ctx).
		Model(&FeedbackEntity{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS count").
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

package services

import (
	"context"

	"github.com/agrilink/agrilink/internal/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) (*model.Feedback, error)
	List(ctx context.Context) ([]*model.Feedback, error)
	AverageRating(ctx context.Context) (*model.RatingSummary, error)
}

type FeedbackService struct {
	repo FeedbackRepository
}

func NewFeedbackService(repo FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

func (s *FeedbackService) Create(ctx context.Context, feedback *model.Feedback) (*model.Feedback, error) {
	if err := feedback.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, feedback)
}

func (s *FeedbackService) List(ctx context.Context) ([]*model.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *FeedbackService) AverageRating(ctx context.Context) (*model.RatingSummary, error) {
	return s.repo.AverageRating(ctx)
}

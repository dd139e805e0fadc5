package services

import (
	"context"
	"errors"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/repository"
)

var (
	ErrFarmerNotFound = errors.New("farmer not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type FarmerRepository interface {
	Create(ctx context.Context, farmer *model.Farmer) (*model.Farmer, error)
	Get(ctx context.Context, id int64) (*model.Farmer, error)
	GetByEmail(ctx context.Context, email string) (*model.Farmer, error)
	List(ctx context.Context) ([]*model.Farmer, error)
	Update(ctx context.Context, id int64, farmer *model.Farmer) (*model.Farmer, error)
	Delete(ctx context.Context, id int64) error
}

type FarmerService struct {
	repo FarmerRepository
}

func NewFarmerService(repo FarmerRepository) *FarmerService {
	return &FarmerService{repo: repo}
}

func (s *FarmerService) Register(ctx context.Context, farmer *model.Farmer) (*model.Farmer, error) {
	if err := farmer.Validate(); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, farmer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return created, nil
}

func (s *FarmerService) Get(ctx context.Context, id int64) (*model.Farmer, error) {
	farmer, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFarmerNotFound
		}
		return nil, err
	}
	return farmer, nil
}

func (s *FarmerService) List(ctx context.Context) ([]*model.Farmer, error) {
	return s.repo.List(ctx)
}

func (s *FarmerService) Update(ctx context.Context, id int64, farmer *model.Farmer) (*model.Farmer, error) {
	if err := farmer.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, farmer)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrFarmerNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return updated, nil
}

func (s *FarmerService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFarmerNotFound
	}
	return err
}

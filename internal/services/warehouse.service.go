package services

import (
	"context"
	"errors"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/repository"
)

var ErrWarehouseRequestNotFound = errors.New("warehouse request not found")

type WarehouseRequestRepository interface {
	Create(ctx context.Context, req *model.WarehouseRequest) (*model.WarehouseRequest, error)
	Get(ctx context.Context, id int64) (*model.WarehouseRequest, error)
	List(ctx context.Context) ([]*model.WarehouseRequest, error)
	Update(ctx context.Context, id int64, req *model.WarehouseRequest) (*model.WarehouseRequest, error)
	Delete(ctx context.Context, id int64) error
}

type WarehouseService struct {
	repo WarehouseRequestRepository
}

func NewWarehouseService(repo WarehouseRequestRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

func (s *WarehouseService) Create(ctx context.Context, req *model.WarehouseRequest) (*model.WarehouseRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, req)
}

func (s *WarehouseService) Get(ctx context.Context, id int64) (*model.WarehouseRequest, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWarehouseRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *WarehouseService) List(ctx context.Context) ([]*model.WarehouseRequest, error) {
	return s.repo.List(ctx)
}

func (s *WarehouseService) Update(ctx context.Context, id int64, req *model.WarehouseRequest) (*model.WarehouseRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWarehouseRequestNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *WarehouseService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWarehouseRequestNotFound
	}
	return err
}

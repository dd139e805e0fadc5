package services

import (
	"context"
	"errors"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, product)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

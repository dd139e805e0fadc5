package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type ProductEntity struct {
	ID               int64     `db:"id"                 gorm:"primaryKey;autoIncrement;column:id"`
	Name             string    `db:"name"               gorm:"column:name;not null"`
	Category         string    `db:"category"           gorm:"column:category"`
	Price            float64   `db:"price"              gorm:"column:price;not null;default:0"`
	Quantity         float64   `db:"quantity"           gorm:"column:quantity;not null;default:0"`
	ProductionCost   float64   `db:"production_cost"    gorm:"column:production_cost;not null"`
	FairProfitMargin float64   `db:"fair_profit_margin" gorm:"column:fair_profit_margin;not null;default:0"`
	Farmer           string    `db:"farmer"             gorm:"column:farmer"`
	CreatedAt        time.Time `db:"created_at"         gorm:"column:created_at;autoCreateTime"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductEntity(p *model.Product) *ProductEntity {
	if p == nil {
		return nil
	}
	e := &ProductEntity{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Price:            p.Price,
		Quantity:         p.Quantity,
		FairProfitMargin: p.FairProfitMargin,
		Farmer:           p.Farmer,
		CreatedAt:        p.CreatedAt,
	}
	if p.ProductionCost != nil {
		e.ProductionCost = *p.ProductionCost
	}
	return e
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	cost := e.ProductionCost
	return &model.Product{
		ID:               e.ID,
		Name:             e.Name,
		Category:         e.Category,
		Price:            e.Price,
		Quantity:         e.Quantity,
		ProductionCost:   &cost,
		FairProfitMargin: e.FairProfitMargin,
		Farmer:           e.Farmer,
		CreatedAt:        e.CreatedAt,
	}
}

type ProductRepository struct {
	db *pg.DB
}

func NewProductRepository(db *pg.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	entity := toProductEntity(product)
	entity.ID = 0
	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toProductModel(entity), nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*model.Product, error) {
	var entity ProductEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProductModel(&entity), nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	var entities []*ProductEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, product *model.Product) (*model.Product, error) {
	var updated *ProductEntity

	err := r.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var entity ProductEntity
		if err := r.db.Write(txCtx).WithContext(txCtx).First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		incoming := toProductEntity(product)
		incoming.ID = entity.ID
		incoming.CreatedAt = entity.CreatedAt
		if err := r.db.Write(txCtx).WithContext(txCtx).Save(incoming).Error; err != nil {
			return err
		}
		updated = incoming
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductModel(updated), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.Write(ctx).WithContext(ctx).Delete(&ProductEntity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type DeliveryOrderRepository struct {
	db *pg.DB
}

func NewDeliveryOrderRepository(db *pg.DB) *DeliveryOrderRepository {
	return &DeliveryOrderRepository{db: db}
}

// Create persists a new delivery order. The unique index on order_id is
// authoritative for duplicate detection; a racing insert surfaces as
// ErrDuplicateOrderID either way.
func (r *DeliveryOrderRepository) Create(ctx context.Context, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	entity := toDeliveryOrderEntity(order)
	entity.ID = 0

	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOrderID
		}
		return nil, err
	}
	return toDeliveryOrderModel(entity), nil
}

func (r *DeliveryOrderRepository) Get(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	var entity DeliveryOrderEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDeliveryOrderModel(&entity), nil
}

func (r *DeliveryOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*model.DeliveryOrder, error) {
	var entity DeliveryOrderEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDeliveryOrderModel(&entity), nil
}

// List returns every delivery order, newest first.
func (r *DeliveryOrderRepository) List(ctx context.Context) ([]*model.DeliveryOrder, error) {
	var entities []*DeliveryOrderEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return toDeliveryOrderModels(entities), nil
}

// Update replaces the editable fields of an order. Status and creation
// time are owned by other operations and are left untouched.
func (r *DeliveryOrderRepository) Update(ctx context.Context, id int64, order *model.DeliveryOrder) (*model.DeliveryOrder, error) {
	var updated *DeliveryOrderEntity

	err := r.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var entity DeliveryOrderEntity
		if err := r.db.Write(txCtx).WithContext(txCtx).First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		incoming := toDeliveryOrderEntity(order)
		incoming.ID = entity.ID
		incoming.OrderID = entity.OrderID
		incoming.Status = entity.Status
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
	return toDeliveryOrderModel(updated), nil
}

// UpdateStatus sets the status of the order identified by its tracking id.
func (r *DeliveryOrderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.DeliveryOrder, error) {
	res := r.db.Write(ctx).WithContext(ctx).
		Model(&DeliveryOrderEntity{}).
		Where("order_id = ?", orderID).
		Update("status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByOrderID(ctx, orderID)
}

// Delete removes an order and returns the removed record.
func (r *DeliveryOrderRepository) Delete(ctx context.Context, id int64) (*model.DeliveryOrder, error) {
	var deleted *DeliveryOrderEntity

	err := r.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var entity DeliveryOrderEntity
		if err := r.db.Write(txCtx).WithContext(txCtx).First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := r.db.Write(txCtx).WithContext(txCtx).Delete(&DeliveryOrderEntity{}, "id = ?", id).Error; err != nil {
			return err
		}
		deleted = &entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryOrderModel(deleted), nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type WarehouseRequestEntity struct {
	ID                  int64     `db:"id"                   gorm:"primaryKey;autoIncrement;column:id"`
	Name                string    `db:"name"                 gorm:"column:name;not null"`
	Address             string    `db:"address"              gorm:"column:address;not null"`
	ContactName         string    `db:"contact_name"         gorm:"column:contact_name;not null"`
	TypeOfGoods         string    `db:"type_of_goods"        gorm:"column:type_of_goods;not null"`
	StorageDuration     string    `db:"storage_duration"     gorm:"column:storage_duration;not null"`
	Quantity            string    `db:"quantity"             gorm:"column:quantity;not null"`
	SpecialRequirements string    `db:"special_requirements" gorm:"column:special_requirements;not null"`
	PreferredLocation   string    `db:"preferred_location"   gorm:"column:preferred_location;not null"`
	DropOffDate         time.Time `db:"drop_off_date"        gorm:"column:drop_off_date;not null"`
	PickUpDate          time.Time `db:"pick_up_date"         gorm:"column:pick_up_date;not null"`
	CreatedAt           time.Time `db:"created_at"           gorm:"column:created_at;autoCreateTime"`
}

func (WarehouseRequestEntity) TableName() string {
	return "warehouse_requests"
}

func toWarehouseRequestEntity(w *model.WarehouseRequest) *WarehouseRequestEntity {
	if w == nil {
		return nil
	}
	return &WarehouseRequestEntity{
		ID:                  w.ID,
		Name:                w.Name,
		Address:             w.Address,
		ContactName:         w.ContactName,
		TypeOfGoods:         w.TypeOfGoods,
		StorageDuration:     w.StorageDuration,
		Quantity:            w.Quantity,
		SpecialRequirements: w.SpecialRequirements,
		PreferredLocation:   w.PreferredLocation,
		DropOffDate:         w.DropOffDate,
		PickUpDate:          w.PickUpDate,
		CreatedAt:           w.CreatedAt,
	}
}

func toWarehouseRequestModel(e *WarehouseRequestEntity) *model.WarehouseRequest {
	if e == nil {
		return nil
	}
	return &model.WarehouseRequest{
		ID:                  e.ID,
		Name:                e.Name,
		Address:             e.Address,
		ContactName:         e.ContactName,
		TypeOfGoods:         e.TypeOfGoods,
		StorageDuration:     e.StorageDuration,
		Quantity:            e.Quantity,
		SpecialRequirements: e.SpecialRequirements,
		PreferredLocation:   e.PreferredLocation,
		DropOffDate:         e.DropOffDate,
		PickUpDate:          e.PickUpDate,
		CreatedAt:           e.CreatedAt,
	}
}

type WarehouseRequestRepository struct {
	db *pg.DB
}

func NewWarehouseRequestRepository(db *pg.DB) *WarehouseRequestRepository {
	return &WarehouseRequestRepository{db: db}
}

func (r *WarehouseRequestRepository) Create(ctx context.Context, req *model.WarehouseRequest) (*model.WarehouseRequest, error) {
	entity := toWarehouseRequestEntity(req)
	entity.ID = 0
	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toWarehouseRequestModel(entity), nil
}

func (r *WarehouseRequestRepository) Get(ctx context.Context, id int64) (*model.WarehouseRequest, error) {
	var entity WarehouseRequestEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toWarehouseRequestModel(&entity), nil
}

func (r *WarehouseRequestRepository) List(ctx context.Context) ([]*model.WarehouseRequest, error) {
	var entities []*WarehouseRequestEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	models := make([]*model.WarehouseRequest, len(entities))
	for i, e := range entities {
		models[i] = toWarehouseRequestModel(e)
	}
	return models, nil
}

func (r *WarehouseRequestRepository) Update(ctx context.Context, id int64, req *model.WarehouseRequest) (*model.WarehouseRequest, error) {
	var updated *WarehouseRequestEntity

	err := r.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var entity WarehouseRequestEntity
		if err := r.db.Write(txCtx).WithContext(txCtx).First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		incoming := toWarehouseRequestEntity(req)
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
	return toWarehouseRequestModel(updated), nil
}

func (r *WarehouseRequestRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.Write(ctx).WithContext(ctx).Delete(&WarehouseRequestEntity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

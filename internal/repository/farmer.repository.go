package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/agrilink/agrilink/internal/model"
	"github.com/agrilink/agrilink/pkg/pg"
)

type FarmerEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	FarmerName   string    `db:"farmer_name"   gorm:"column:farmer_name;not null"`
	CropType     string    `db:"crop_type"     gorm:"column:crop_type;not null"`
	FarmSize     string    `db:"farm_size"     gorm:"column:farm_size;not null"`
	FarmLocation string    `db:"farm_location" gorm:"column:farm_location;not null"`
	PhoneNumber  string    `db:"phone_number"  gorm:"column:phone_number;not null"`
	Email        string    `db:"email"         gorm:"column:email;not null;uniqueIndex"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at;autoCreateTime"`
}

func (FarmerEntity) TableName() string {
	return "farmers"
}

func toFarmerEntity(f *model.Farmer) *FarmerEntity {
	if f == nil {
		return nil
	}
	return &FarmerEntity{
		ID:           f.ID,
		FarmerName:   f.FarmerName,
		CropType:     f.CropType,
		FarmSize:     f.FarmSize,
		FarmLocation: f.FarmLocation,
		PhoneNumber:  f.PhoneNumber,
		Email:        f.Email,
		CreatedAt:    f.CreatedAt,
	}
}

func toFarmerModel(e *FarmerEntity) *model.Farmer {
	if e == nil {
		return nil
	}
	return &model.Farmer{
		ID:           e.ID,
		FarmerName:   e.FarmerName,
		CropType:     e.CropType,
		FarmSize:     e.FarmSize,
		FarmLocation: e.FarmLocation,
		PhoneNumber:  e.PhoneNumber,
		Email:        e.Email,
		CreatedAt:    e.CreatedAt,
	}
}

type FarmerRepository struct {
	db *pg.DB
}

func NewFarmerRepository(db *pg.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

func (r *FarmerRepository) Create(ctx context.Context, farmer *model.Farmer) (*model.Farmer, error) {
	entity := toFarmerEntity(farmer)
	entity.ID = 0
	if err := r.db.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return toFarmerModel(entity), nil
}

func (r *FarmerRepository) Get(ctx context.Context, id int64) (*model.Farmer, error) {
	var entity FarmerEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toFarmerModel(&entity), nil
}

func (r *FarmerRepository) GetByEmail(ctx context.Context, email string) (*model.Farmer, error) {
	var entity FarmerEntity
	err := r.db.Read(ctx).WithContext(ctx).First(&entity, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toFarmerModel(&entity), nil
}

func (r *FarmerRepository) List(ctx context.Context) ([]*model.Farmer, error) {
	var entities []*FarmerEntity
	err := r.db.Read(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	models := make([]*model.Farmer, len(entities))
	for i, e := range entities {
		models[i] = toFarmerModel(e)
	}
	return models, nil
}

func (r *FarmerRepository) Update(ctx context.Context, id int64, farmer *model.Farmer) (*model.Farmer, error) {
	var updated *FarmerEntity

	err := r.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var entity FarmerEntity
		if err := r.db.Write(txCtx).WithContext(txCtx).First(&entity, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		incoming := toFarmerEntity(farmer)
		incoming.ID = entity.ID
		incoming.CreatedAt = entity.CreatedAt
		if err := r.db.Write(txCtx).WithContext(txCtx).Save(incoming).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		updated = incoming
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toFarmerModel(updated), nil
}

func (r *FarmerRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.Write(ctx).WithContext(ctx).Delete(&FarmerEntity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

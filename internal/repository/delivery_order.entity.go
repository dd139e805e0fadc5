package repository

import (
	"time"

	"github.com/agrilink/agrilink/internal/model"
)

type DeliveryOrderEntity struct {
	ID                   int64     `db:"id"                     gorm:"primaryKey;autoIncrement;column:id"`
	OrderID              string    `db:"order_id"               gorm:"column:order_id;not null;uniqueIndex"`
	DeliveryAddress      string    `db:"delivery_address"       gorm:"column:delivery_address;not null"`
	ContactNumber        string    `db:"contact_number"         gorm:"column:contact_number;not null"`
	Email                string    `db:"email"                  gorm:"column:email;not null"`
	RefrigeratedPacking  bool      `db:"refrigerated_packing"   gorm:"column:refrigerated_packing;not null;default:false"`
	InsulatedPacking     bool      `db:"insulated_packing"      gorm:"column:insulated_packing;not null;default:false"`
	CustomPacking        bool      `db:"custom_packing"         gorm:"column:custom_packing;not null;default:false"`
	SpecialInstructions  string    `db:"special_instructions"   gorm:"column:special_instructions"`
	IsBulkOrder          bool      `db:"is_bulk_order"          gorm:"column:is_bulk_order;not null;default:false"`
	BulkOrderID          string    `db:"bulk_order_id"          gorm:"column:bulk_order_id"`
	BulkDeliveryAddress  string    `db:"bulk_delivery_address"  gorm:"column:bulk_delivery_address"`
	BulkContactNumber    string    `db:"bulk_contact_number"    gorm:"column:bulk_contact_number"`
	BulkOrderWeight      float64   `db:"bulk_order_weight"      gorm:"column:bulk_order_weight"`
	PreferredPacking     string    `db:"preferred_packing"      gorm:"column:preferred_packing;not null"`
	PreferredVehicleType string    `db:"preferred_vehicle_type" gorm:"column:preferred_vehicle_type;not null"`
	Status               string    `db:"status"                 gorm:"column:status;not null"`
	CreatedAt            time.Time `db:"created_at"             gorm:"column:created_at;autoCreateTime"`
}

func (DeliveryOrderEntity) TableName() string {
	return "delivery_orders"
}

func toDeliveryOrderEntity(o *model.DeliveryOrder) *DeliveryOrderEntity {
	if o == nil {
		return nil
	}
	return &DeliveryOrderEntity{
		ID:                   o.ID,
		OrderID:              o.OrderID,
		DeliveryAddress:      o.DeliveryAddress,
		ContactNumber:        o.ContactNumber,
		Email:                o.Email,
		RefrigeratedPacking:  o.RefrigeratedPacking,
		InsulatedPacking:     o.InsulatedPacking,
		CustomPacking:        o.CustomPacking,
		SpecialInstructions:  o.SpecialInstructions,
		IsBulkOrder:          o.IsBulkOrder,
		BulkOrderID:          o.BulkOrderID,
		BulkDeliveryAddress:  o.BulkDeliveryAddress,
		BulkContactNumber:    o.BulkContactNumber,
		BulkOrderWeight:      o.BulkOrderWeight,
		PreferredPacking:     o.PreferredPacking,
		PreferredVehicleType: o.PreferredVehicleType,
		Status:               string(o.Status),
		CreatedAt:            o.CreatedAt,
	}
}

func toDeliveryOrderModel(e *DeliveryOrderEntity) *model.DeliveryOrder {
	if e == nil {
		return nil
	}
	return &model.DeliveryOrder{
		ID:                   e.ID,
		OrderID:              e.OrderID,
		DeliveryAddress:      e.DeliveryAddress,
		ContactNumber:        e.ContactNumber,
		Email:                e.Email,
		RefrigeratedPacking:  e.RefrigeratedPacking,
		InsulatedPacking:     e.InsulatedPacking,
		CustomPacking:        e.CustomPacking,
		SpecialInstructions:  e.SpecialInstructions,
		IsBulkOrder:          e.IsBulkOrder,
		BulkOrderID:          e.BulkOrderID,
		BulkDeliveryAddress:  e.BulkDeliveryAddress,
		BulkContactNumber:    e.BulkContactNumber,
		BulkOrderWeight:      e.BulkOrderWeight,
		PreferredPacking:     e.PreferredPacking,
		PreferredVehicleType: e.PreferredVehicleType,
		Status:               model.OrderStatus(e.Status),
		CreatedAt:            e.CreatedAt,
	}
}

func toDeliveryOrderModels(entities []*DeliveryOrderEntity) []*model.DeliveryOrder {
	if entities == nil {
		return nil
	}
	models := make([]*model.DeliveryOrder, len(entities))
	for i, e := range entities {
		models[i] = toDeliveryOrderModel(e)
	}
	return models
}

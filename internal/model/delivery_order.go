package model

import (
	"regexp"
	"time"
)

// OrderStatus is the lifecycle state of a delivery order. The four values
// form the intended pipeline, but any valid value may be written at any
// time: operators use backward writes to correct mis-scans, so the store
// does not enforce forward-only transitions.
type OrderStatus string

const (
	StatusFirstMileReceiveScan OrderStatus = "FIRST MILE RECEIVE SCAN"
	StatusReceivedInFacility   OrderStatus = "RECEIVED IN FACILITY"
	StatusOutForDelivery       OrderStatus = "OUT FOR DELIVERY"
	StatusDelivered            OrderStatus = "DELIVERED"
)

// OrderStatuses lists the canonical values in pipeline order.
var OrderStatuses = []OrderStatus{
	StatusFirstMileReceiveScan,
	StatusReceivedInFacility,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether s is one of the four canonical values. Matching
// is exact and case-sensitive.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusFirstMileReceiveScan, StatusReceivedInFacility, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

var (
	contactNumberPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// DeliveryOrder is a logistics order for produce shipment. OrderID is the
// caller-assigned tracking identifier, unique across all orders; ID is
// the storage-assigned surrogate key. JSON names are camelCase for
// compatibility with the web frontend.
type DeliveryOrder struct {
	ID                   int64       `json:"id"`
	OrderID              string      `json:"orderId"`
	DeliveryAddress      string      `json:"deliveryAddress"`
	ContactNumber        string      `json:"contactNumber"`
	Email                string      `json:"email"`
	RefrigeratedPacking  bool        `json:"refrigeratedPacking"`
	InsulatedPacking     bool        `json:"insulatedPacking"`
	CustomPacking        bool        `json:"customPacking"`
	SpecialInstructions  string      `json:"specialInstructions,omitempty"`
	IsBulkOrder          bool        `json:"isBulkOrder"`
	BulkOrderID          string      `json:"bulkOrderId,omitempty"`
	BulkDeliveryAddress  string      `json:"bulkDeliveryAddress,omitempty"`
	BulkContactNumber    string      `json:"bulkContactNumber,omitempty"`
	BulkOrderWeight      float64     `json:"bulkOrderWeight,omitempty"`
	PreferredPacking     string      `json:"preferredPacking"`
	PreferredVehicleType string      `json:"preferredVehicleType"`
	Status               OrderStatus `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
}

// Validate checks every constraint a create or update must satisfy. The
// duplicate orderId check is a storage concern and lives in the
// repository.
func (o *DeliveryOrder) Validate() error {
	v := NewValidationError()

	if o.OrderID == "" {
		v.Add("orderId", "orderId is required")
	}
	if o.DeliveryAddress == "" {
		v.Add("deliveryAddress", "deliveryAddress is required")
	}
	switch {
	case o.ContactNumber == "":
		v.Add("contactNumber", "contactNumber is required")
	case !contactNumberPattern.MatchString(o.ContactNumber):
		v.Add("contactNumber", "contactNumber must be a 10-digit number")
	}
	switch {
	case o.Email == "":
		v.Add("email", "email is required")
	case !emailPattern.MatchString(o.Email):
		v.Add("email", "email must be a valid address")
	}
	if o.PreferredPacking == "" {
		v.Add("preferredPacking", "preferredPacking is required")
	}
	if o.PreferredVehicleType == "" {
		v.Add("preferredVehicleType", "preferredVehicleType is required")
	}

	if o.IsBulkOrder {
		if o.BulkOrderID == "" {
			v.Add("bulkOrderId", "bulkOrderId is required for bulk orders")
		}
		if o.BulkDeliveryAddress == "" {
			v.Add("bulkDeliveryAddress", "bulkDeliveryAddress is required for bulk orders")
		}
		switch {
		case o.BulkContactNumber == "":
			v.Add("bulkContactNumber", "bulkContactNumber is required for bulk orders")
		case !contactNumberPattern.MatchString(o.BulkContactNumber):
			v.Add("bulkContactNumber", "bulkContactNumber must be a 10-digit number")
		}
		if o.BulkOrderWeight <= 0 {
			v.Add("bulkOrderWeight", "bulkOrderWeight must be a positive number")
		}
	}

	return v.OrNil()
}

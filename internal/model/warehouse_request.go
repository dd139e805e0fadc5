package model

import "time"

// WarehouseRequest is a farmer's request for temporary produce storage.
type WarehouseRequest struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Address             string    `json:"address"`
	ContactName         string    `json:"contactName"`
	TypeOfGoods         string    `json:"typeOfGoods"`
	StorageDuration     string    `json:"storageDuration"`
	Quantity            string    `json:"quantity"`
	SpecialRequirements string    `json:"specialRequirements"`
	PreferredLocation   string    `json:"preferredLocation"`
	DropOffDate         time.Time `json:"dropOffDate"`
	PickUpDate          time.Time `json:"pickUpDate"`
	CreatedAt           time.Time `json:"createdAt"`
}

func (w *WarehouseRequest) Validate() error {
	v := NewValidationError()

	required := map[string]string{
		"name":                w.Name,
		"address":             w.Address,
		"contactName":         w.ContactName,
		"typeOfGoods":         w.TypeOfGoods,
		"storageDuration":     w.StorageDuration,
		"quantity":            w.Quantity,
		"specialRequirements": w.SpecialRequirements,
		"preferredLocation":   w.PreferredLocation,
	}
	for field, value := range required {
		if value == "" {
			v.Add(field, field+" is required")
		}
	}
	if w.DropOffDate.IsZero() {
		v.Add("dropOffDate", "dropOffDate is required")
	}
	if w.PickUpDate.IsZero() {
		v.Add("pickUpDate", "pickUpDate is required")
	}

	return v.OrNil()
}

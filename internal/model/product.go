package model

import "time"

// Product is a produce listing offered by a farmer. ProductionCost is a
// pointer because zero is a legal cost; only a missing value is invalid.
type Product struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	Price            float64  `json:"price"`
	Quantity         float64  `json:"quantity"`
	ProductionCost   *float64 `json:"productionCost"`
	FairProfitMargin float64  `json:"fairProfitMargin"`
	Farmer           string   `json:"farmer,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Product) Validate() error {
	v := NewValidationError()

	if p.Name == "" {
		v.Add("name", "name is required")
	}
	if p.ProductionCost == nil {
		v.Add("productionCost", "productionCost is required")
	}

	return v.OrNil()
}

package model

import "time"

// Feedback is a rating left by any visitor; shown on the admin dashboard.
type Feedback struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Feedback  string    `json:"feedback"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

func (f *Feedback) Validate() error {
	v := NewValidationError()

	if f.FullName == "" {
		v.Add("fullName", "fullName is required")
	}
	if f.Feedback == "" {
		v.Add("feedback", "feedback is required")
	}
	if f.Rating < 1 || f.Rating > 5 {
		v.Add("rating", "rating must be between 1 and 5")
	}

	return v.OrNil()
}

// RatingSummary is the aggregate returned by the average-rating endpoint.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	Count         int64   `json:"count"`
}

package model

import "time"

// Farmer is a registered producer profile. Email is unique across the
// registry. Credentials are deliberately not part of this record; the
// registry stores profiles, not logins.
type Farmer struct {
	ID           int64     `json:"id"`
	FarmerName   string    `json:"farmerName"`
	CropType     string    `json:"cropType"`
	FarmSize     string    `json:"farmSize"`
	FarmLocation string    `json:"farmLocation"`
	PhoneNumber  string    `json:"phoneNumber"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (f *Farmer) Validate() error {
	v := NewValidationError()

	required := map[string]string{
		"farmerName":   f.FarmerName,
		"cropType":     f.CropType,
		"farmSize":     f.FarmSize,
		"farmLocation": f.FarmLocation,
		"phoneNumber":  f.PhoneNumber,
	}
	for field, value := range required {
		if value == "" {
			v.Add(field, field+" is required")
		}
	}
	switch {
	case f.Email == "":
		v.Add("email", "email is required")
	case !emailPattern.MatchString(f.Email):
		v.Add("email", "email must be a valid address")
	}

	return v.OrNil()
}

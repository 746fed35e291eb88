package models

import "time"

// Prize is one slice of the wheel. Weight is relative probability mass, not a percentage.
type Prize struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`   // Optional URL
	Weight    float64   `bson:"weight" json:"weight"` // >= 0
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PrizeUpdate carries the fields of a partial prize update; nil means unchanged
type PrizeUpdate struct {
	Name   *string
	Image  *string
	Weight *float64
}

// IsEmpty reports whether the update changes nothing
func (u PrizeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Image == nil && u.Weight == nil
}

// CreatePrizeRequest is the body of POST /api/prizes
type CreatePrizeRequest struct {
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	Weight *float64 `json:"weight"`
}

// UpdatePrizeRequest is the body of PUT /api/prizes/:id
type UpdatePrizeRequest struct {
	Name   *string  `json:"name"`
	Image  *string  `json:"image"`
	Weight *float64 `json:"weight"`
}

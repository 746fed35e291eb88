package models

import "time"

// SpinRecord holds the latest spin of a DNI. The prize fields are a snapshot
// taken at win time, so later catalog edits do not rewrite history.
type SpinRecord struct {
	DNI             string    `bson:"dni" json:"dni"`
	LastSpinAt      time.Time `bson:"lastSpinAt" json:"lastSpinAt"`
	NextAvailableAt time.Time `bson:"nextAvailableAt" json:"nextAvailableAt"`
	LastPrizeID     string    `bson:"lastPrizeId" json:"lastPrizeId"`
	LastPrizeName   string    `bson:"lastPrizeName" json:"lastPrizeName"`
	LastPrizeImage  string    `bson:"lastPrizeImage" json:"lastPrizeImage"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SpinRequest is the body of POST /api/spin
type SpinRequest struct {
	DNI string `json:"dni"`
}

// SpinResult is what a successful spin returns to the caller
type SpinResult struct {
	Prize    *Prize `json:"prize"`
	Redirect string `json:"redirect"`
}

// LastPrizeView feeds the per-DNI result page
type LastPrizeView struct {
	BusinessName   string `json:"businessName"`
	InstagramQRURL string `json:"instagramQrUrl"`
	DNI            string `json:"dni"`
	PrizeName      string `json:"prizeName"`
	PrizeImage     string `json:"prizeImage"`
}

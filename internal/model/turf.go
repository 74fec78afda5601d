package model

// Turf is a bookable sports venue
type Turf struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id,omitempty"`
	Name         string   `json:"name"`
	Location     Location `json:"location"`
	Sports       []string `json:"sports"`
	PricePerHour float64  `json:"price_per_hour"`
	Amenities    []string `json:"amenities,omitempty"`
	Rating       float64  `json:"rating,omitempty"`
	TimeSlots    []string `json:"time_slots,omitempty"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
}

// Booking is a confirmed turf reservation
type Booking struct {
	ID       string `json:"id"`
	TurfID   string `json:"turf_id"`
	UserID   string `json:"user_id"`
	GroupID  string `json:"group_id,omitempty"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Status   string `json:"status,omitempty"`
}

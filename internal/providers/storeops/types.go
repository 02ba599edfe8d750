package storeops

import "encoding/json"

type listSlotsRequest struct {
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	Status       string       `json:"status"`
	LocationInfo locationInfo `json:"location_info"`
}

type locationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceID   string  `json:"place_id"`
	PlaceName string  `json:"place_name"`
}

type listSlotsResponse struct {
	Data listSlotsData `json:"data"`
}

type listSlotsData struct {
	Stores []storeResponse `json:"stores"`
}

type storeResponse struct {
	ID      flexID         `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Slots   []slotResponse `json:"slots"`
}

type slotResponse struct {
	ID                 flexID             `json:"id"`
	StartTime          string             `json:"start_time"`
	EndTime            string             `json:"end_time"`
	IsBooked           bool               `json:"is_booked"`
	BookingEligibility bookingEligibility `json:"booking_eligibility"`
	MinPayout          float64            `json:"min_payout"`
	MaxPayout          float64            `json:"max_payout"`
	IsCancellable      bool               `json:"is_cancellable"`
}

type bookingEligibility struct {
	Allowed bool `json:"allowed"`
}

type bookRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

type bookResponse struct {
	Success bool `json:"success"`
}

// flexID accepts both string and numeric ids; the upstream API is not
// consistent about which it sends.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

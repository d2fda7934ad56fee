package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// Live reports whether the request still occupies its slot range for
// conflict purposes.
func (s RequestStatus) Live() bool {
	return s == RequestStatusPending || s == RequestStatusApproved
}

// BookingRequest covers the half-open slot range [StartSlot, EndSlot) of a
// room on a single date. Date is a calendar date in YYYY-MM-DD form.
type BookingRequest struct {
	ID        string
	Requester string
	RoomID    string
	Date      string
	StartSlot int
	EndSlot   int
	Status    RequestStatus
	CreatedAt time.Time
	DecidedAt *time.Time
	DecidedBy string
}

// SlotStatus is the effective status of one slot as derived from the live
// request set; it is never stored.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPending   SlotStatus = "pending"
	SlotBooked    SlotStatus = "booked"
)

// BoardSlot is one row of the availability board projection. RequestID and
// Requester are empty for available slots.
type BoardSlot struct {
	Index     int        `json:"index"`
	Start     string     `json:"start"`
	End       string     `json:"end"`
	Status    SlotStatus `json:"status"`
	RequestID string     `json:"request_id,omitempty"`
	Requester string     `json:"requester,omitempty"`
}

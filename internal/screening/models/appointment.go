package models

import (
	"strings"

	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
)

// Status kunjungan seperti yang dikirim API rumah sakit.
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusConfirmed  Status = "Confirmed"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus normalizes case and separators. Unknown values are returned
// trimmed but otherwise unchanged.
func ParseStatus(s string) Status {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "scheduled":
		return StatusScheduled
	case "confirmed":
		return StatusConfirmed
	case "pending":
		return StatusPending
	case "inprogress":
		return StatusInProgress
	case "completed":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCancelled
	}
	return Status(strings.TrimSpace(s))
}

func (s *Status) UnmarshalText(b []byte) error {
	*s = ParseStatus(string(b))
	return nil
}

type AddressingMode string

const (
	TimeSlot    AddressingMode = "TimeSlot"
	QueueNumber AddressingMode = "QueueNumber"
)

// RecordID accepts both JSON strings and numbers.
type RecordID = utils.FlexibleID

// PersonRef is a partially populated patient or doctor reference.
type PersonRef struct {
	ID        RecordID `json:"id,omitempty"`
	FirstName *string  `json:"first_name,omitempty"`
	LastName  *string  `json:"last_name,omitempty"`
	Name      *string  `json:"name,omitempty"`
}

// AppointmentRecord is one clinical encounter as returned by GET /appointments.
// CalendarDate and StartTime are kept raw; parsing happens during triage so
// malformed values can be logged and excluded instead of failing the decode.
type AppointmentRecord struct {
	ID           RecordID   `json:"id"`
	Patient      *PersonRef `json:"patient,omitempty"`
	Doctor       *PersonRef `json:"doctor,omitempty"`
	CalendarDate string     `json:"date"`
	StartTime    *string    `json:"start_time,omitempty"`
	SerialNumber *int       `json:"serial_number,omitempty"`
	Status       Status     `json:"status"`
	Vitals       Vitals     `json:"vitals,omitempty"`
}

// AddressingMode is QueueNumber when a serial number is present.
func (a AppointmentRecord) AddressingMode() AddressingMode {
	if a.SerialNumber != nil {
		return QueueNumber
	}
	return TimeSlot
}

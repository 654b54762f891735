package models

import "github.com/c14220110/poliklinik-dashboard/pkg/caldate"

// TriageResult partitions non-cancelled appointments. Cancelled and undated
// records are counted in Excluded and appear in neither list.
type TriageResult struct {
	Today    caldate.Date        `json:"today"`
	Upcoming []AppointmentRecord `json:"upcoming"`
	History  []AppointmentRecord `json:"history"`
	Excluded int                 `json:"excluded"`
}

// NurseDashboard holds the counter tiles on the nurse home screen.
type NurseDashboard struct {
	Today          caldate.Date `json:"today"`
	TodayTotal     int          `json:"today_total"`
	VitalsRecorded int          `json:"vitals_recorded"`
	VitalsPending  int          `json:"vitals_pending"`
	CompletedToday int          `json:"completed_today"`
	Upcoming       int          `json:"upcoming"`
	History        int          `json:"history"`
	Excluded       int          `json:"excluded"`
}

// QueueEntry is one row of the nurse vitals queue.
type QueueEntry struct {
	ID          RecordID       `json:"id"`
	Slot        string         `json:"slot"`
	Mode        AddressingMode `json:"mode"`
	PatientName string         `json:"patient_name"`
	DoctorName  string         `json:"doctor_name"`
	Status      Status         `json:"status"`
	Vitals      VitalsStatus   `json:"vitals"`
}

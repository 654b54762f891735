package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
	"github.com/rs/zerolog"
)

// AppointmentSource returns the appointment collection already normalized to
// a flat slice.
type AppointmentSource interface {
	FetchAppointments(ctx context.Context) ([]models.AppointmentRecord, error)
}

// TriageService builds the nurse-facing views on top of Classifier.
type TriageService struct {
	Source     AppointmentSource
	Classifier *Classifier
	log        zerolog.Logger
}

func NewTriageService(source AppointmentSource, log zerolog.Logger) *TriageService {
	return &TriageService{
		Source:     source,
		Classifier: NewClassifier(log),
		log:        log,
	}
}

// Triage fetches all appointments and classifies them against today.
func (s *TriageService) Triage(ctx context.Context, today caldate.Date) (models.TriageResult, error) {
	records, err := s.Source.FetchAppointments(ctx)
	if err != nil {
		return models.TriageResult{}, fmt.Errorf("fetch appointments: %w", err)
	}
	res := s.Classifier.Classify(records, today)
	s.log.Debug().
		Str("today", today.String()).
		Int("upcoming", len(res.Upcoming)).
		Int("history", len(res.History)).
		Int("excluded", res.Excluded).
		Msg("appointments triaged")
	return res, nil
}

// NurseDashboard counts today's workload from a triage result.
func (s *TriageService) NurseDashboard(ctx context.Context, today caldate.Date) (models.NurseDashboard, error) {
	res, err := s.Triage(ctx, today)
	if err != nil {
		return models.NurseDashboard{}, err
	}
	return SummarizeNurseDashboard(res), nil
}

// SummarizeNurseDashboard is the pure half of NurseDashboard.
func SummarizeNurseDashboard(res models.TriageResult) models.NurseDashboard {
	d := models.NurseDashboard{
		Today:    res.Today,
		Upcoming: len(res.Upcoming),
		History:  len(res.History),
		Excluded: res.Excluded,
	}
	count := func(rec models.AppointmentRecord) {
		date, err := caldate.Parse(rec.CalendarDate)
		if err != nil || date != res.Today {
			return
		}
		d.TodayTotal++
		if models.ParseStatus(string(rec.Status)) == models.StatusCompleted {
			d.CompletedToday++
		}
		if VitalsState(rec) == models.VitalsRecorded {
			d.VitalsRecorded++
		} else {
			d.VitalsPending++
		}
	}
	for _, rec := range res.Upcoming {
		count(rec)
	}
	for _, rec := range res.History {
		count(rec)
	}
	return d
}

// VitalsQueue lists today's upcoming appointments in triage order.
func (s *TriageService) VitalsQueue(ctx context.Context, today caldate.Date) ([]models.QueueEntry, error) {
	res, err := s.Triage(ctx, today)
	if err != nil {
		return nil, err
	}
	return BuildVitalsQueue(res), nil
}

func BuildVitalsQueue(res models.TriageResult) []models.QueueEntry {
	queue := []models.QueueEntry{}
	for _, rec := range res.Upcoming {
		date, err := caldate.Parse(rec.CalendarDate)
		if err != nil || date != res.Today {
			continue
		}
		queue = append(queue, models.QueueEntry{
			ID:          rec.ID,
			Slot:        SlotLabel(rec),
			Mode:        rec.AddressingMode(),
			PatientName: PersonName(rec.Patient),
			DoctorName:  PersonName(rec.Doctor),
			Status:      models.ParseStatus(string(rec.Status)),
			Vitals:      VitalsState(rec),
		})
	}
	return queue
}

// SlotLabel renders "No. 7" for walk-in queue numbers and "HH:MM" (UTC) for
// timed appointments.
func SlotLabel(rec models.AppointmentRecord) string {
	if rec.AddressingMode() == models.QueueNumber {
		return fmt.Sprintf("No. %d", *rec.SerialNumber)
	}
	m, ok := MinuteOfDay(rec)
	if !ok {
		return "--:--"
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// PersonName tries first+last name, then name, then "Unknown".
func PersonName(p *models.PersonRef) string {
	if p == nil {
		return "Unknown"
	}
	return utils.FirstOf[string]("Unknown",
		func() (string, bool) {
			first := strings.TrimSpace(deref(p.FirstName))
			if first == "" {
				return "", false
			}
			if last := strings.TrimSpace(deref(p.LastName)); last != "" {
				return first + " " + last, true
			}
			return first, true
		},
		utils.NonEmpty(p.Name),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

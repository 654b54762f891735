package services

import (
	"sort"
	"strings"
	"time"

	"github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/rs/zerolog"
)

// Classifier splits appointments into upcoming and history partitions.
// It holds no state besides its logger and is safe for concurrent use.
type Classifier struct {
	log zerolog.Logger
}

func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{log: log}
}

type triageItem struct {
	rec    models.AppointmentRecord
	date   caldate.Date
	minute int
}

// Classify routes every non-cancelled record with a parsable date:
// Completed always goes to history, otherwise date >= today is upcoming and
// date < today is history. There is no time-of-day cutoff for today.
func (c *Classifier) Classify(records []models.AppointmentRecord, today caldate.Date) models.TriageResult {
	res := models.TriageResult{
		Today:    today,
		Upcoming: []models.AppointmentRecord{},
		History:  []models.AppointmentRecord{},
	}

	var upcoming, history []triageItem
	for _, rec := range records {
		status := models.ParseStatus(string(rec.Status))
		if status == models.StatusCancelled {
			res.Excluded++
			continue
		}
		date, err := caldate.Parse(rec.CalendarDate)
		if err != nil {
			c.log.Warn().
				Str("appointment_id", string(rec.ID)).
				Str("date", rec.CalendarDate).
				Err(err).
				Msg("appointment excluded from triage: unparsable date")
			res.Excluded++
			continue
		}
		item := triageItem{rec: rec, date: date, minute: c.minuteOf(rec)}

		switch {
		case status == models.StatusCompleted:
			history = append(history, item)
		case date.Before(today):
			history = append(history, item)
		default:
			upcoming = append(upcoming, item)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		a, b := upcoming[i], upcoming[j]
		if cmp := a.date.Compare(b.date); cmp != 0 {
			return cmp < 0
		}
		return a.minute < b.minute
	})
	sort.SliceStable(history, func(i, j int) bool {
		a, b := history[i], history[j]
		if cmp := a.date.Compare(b.date); cmp != 0 {
			return cmp > 0
		}
		return a.minute > b.minute
	})

	for _, it := range upcoming {
		res.Upcoming = append(res.Upcoming, it.rec)
	}
	for _, it := range history {
		res.History = append(res.History, it.rec)
	}
	return res
}

func (c *Classifier) minuteOf(rec models.AppointmentRecord) int {
	m, ok := MinuteOfDay(rec)
	if !ok && rec.StartTime != nil && strings.TrimSpace(*rec.StartTime) != "" {
		c.log.Debug().
			Str("appointment_id", string(rec.ID)).
			Str("start_time", *rec.StartTime).
			Msg("unparsable start_time, sorting as 00:00")
	}
	return m
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

var clockLayouts = []string{"15:04:05", "15:04"}

// MinuteOfDay returns hour*60+minute of StartTime in UTC. The date part of the
// timestamp is ignored; CalendarDate decides the day. Missing or unparsable
// values yield (0, false). Queue-numbered records use the same rule: the
// serial number is never a sort key.
func MinuteOfDay(rec models.AppointmentRecord) (int, bool) {
	if rec.StartTime == nil {
		return 0, false
	}
	s := strings.TrimSpace(*rec.StartTime)
	if s == "" {
		return 0, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return t.Hour()*60 + t.Minute(), true
		}
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// VitalsState applies the single completeness predicate used by every view.
func VitalsState(rec models.AppointmentRecord) models.VitalsStatus {
	return rec.Vitals.Status()
}

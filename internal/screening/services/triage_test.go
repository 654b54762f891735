package services

import (
	"bytes"
	"fmt"
	"math/rand"
	"testing"

	"github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }
func num(n int) *int { return &n }

func appt(id, date, start string, status models.Status) models.AppointmentRecord {
	rec := models.AppointmentRecord{ID: models.RecordID(id), CalendarDate: date, Status: status}
	if start != "" {
		rec.StartTime = str(start)
	}
	return rec
}

func ids(recs []models.AppointmentRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, string(r.ID))
	}
	return out
}

func TestClassify_SameDayOrderedByClock(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	records := []models.AppointmentRecord{
		appt("nine", "2024-05-10", "2024-05-10T09:00:00Z", models.StatusScheduled),
		appt("eight", "2024-05-10", "2024-05-10T08:00:00Z", models.StatusScheduled),
	}

	res := c.Classify(records, caldate.MustParse("2024-05-10"))

	assert.Equal(t, []string{"eight", "nine"}, ids(res.Upcoming))
	assert.Empty(t, res.History)
}

func TestClassify_Routing(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	today := caldate.MustParse("2024-05-10")
	records := []models.AppointmentRecord{
		appt("past", "2024-05-09", "", models.StatusScheduled),
		appt("future", "2024-05-11", "", models.StatusConfirmed),
		appt("today-late", "2024-05-10", "2024-05-10T23:50:00Z", models.StatusPending),
		appt("done-tomorrow", "2024-05-11", "", models.StatusCompleted),
		appt("cancelled", "2024-05-10", "", models.StatusCancelled),
		appt("cancelled-raw", "2024-05-12", "", models.Status("canceled")),
	}

	res := c.Classify(records, today)

	assert.Equal(t, []string{"today-late", "future"}, ids(res.Upcoming))
	assert.Equal(t, []string{"done-tomorrow", "past"}, ids(res.History))
	assert.Equal(t, 2, res.Excluded)
}

func TestClassify_HistoryDescending(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	records := []models.AppointmentRecord{
		appt("a", "2024-05-01", "2024-05-01T08:00:00Z", models.StatusCompleted),
		appt("b", "2024-05-03", "2024-05-03T07:00:00Z", models.StatusCompleted),
		appt("c", "2024-05-01", "2024-05-01T10:30:00Z", models.StatusCompleted),
	}

	res := c.Classify(records, caldate.MustParse("2024-05-10"))

	assert.Equal(t, []string{"b", "c", "a"}, ids(res.History))
}

func TestClassify_StableForEqualKeys(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	records := []models.AppointmentRecord{
		appt("first", "2024-05-10", "2024-05-10T09:00:00Z", models.StatusScheduled),
		appt("second", "2024-05-10", "2024-05-10T09:00:00Z", models.StatusScheduled),
		appt("third", "2024-05-10", "2024-05-10T09:00:00Z", models.StatusScheduled),
		appt("old1", "2024-05-01", "", models.StatusScheduled),
		appt("old2", "2024-05-01", "", models.StatusScheduled),
	}

	res := c.Classify(records, caldate.MustParse("2024-05-10"))

	assert.Equal(t, []string{"first", "second", "third"}, ids(res.Upcoming))
	assert.Equal(t, []string{"old1", "old2"}, ids(res.History))
}

func TestClassify_QueueNumberIsNotASortKey(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	late := appt("q1", "2024-05-10", "2024-05-10T10:00:00Z", models.StatusScheduled)
	late.SerialNumber = num(1)
	noTime := appt("q9", "2024-05-10", "", models.StatusScheduled)
	noTime.SerialNumber = num(9)
	timed := appt("t", "2024-05-10", "2024-05-10T09:15:00Z", models.StatusScheduled)

	res := c.Classify([]models.AppointmentRecord{late, timed, noTime}, caldate.MustParse("2024-05-10"))

	// q9 has no timestamp so sorts as 00:00, ahead of everything that day
	assert.Equal(t, []string{"q9", "t", "q1"}, ids(res.Upcoming))
}

func TestClassify_StartTimeDateComponentIgnored(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	records := []models.AppointmentRecord{
		appt("b", "2024-05-10", "1999-01-01T08:30:00Z", models.StatusScheduled),
		appt("a", "2024-05-10", "2030-12-31T08:00:00Z", models.StatusScheduled),
	}

	res := c.Classify(records, caldate.MustParse("2024-05-10"))

	assert.Equal(t, []string{"a", "b"}, ids(res.Upcoming))
}

func TestClassify_MinuteOfDayUsesUTC(t *testing.T) {
	c := NewClassifier(zerolog.Nop())
	records := []models.AppointmentRecord{
		// 09:00 in Jakarta is 02:00 UTC
		appt("jakarta", "2024-05-10", "2024-05-10T09:00:00+07:00", models.StatusScheduled),
		appt("utc", "2024-05-10", "2024-05-10T03:00:00Z", models.StatusScheduled),
	}

	res := c.Classify(records, caldate.MustParse("2024-05-10"))

	assert.Equal(t, []string{"jakarta", "utc"}, ids(res.Upcoming))
}

func TestClassify_MalformedRecords(t *testing.T) {
	var buf bytes.Buffer
	c := NewClassifier(zerolog.New(&buf))
	records := []models.AppointmentRecord{
		appt("bad-date", "next tuesday", "", models.StatusScheduled),
		appt("no-date", "", "", models.StatusCompleted),
		appt("bad-time", "2024-05-10", "soon", models.StatusScheduled),
		appt("ok", "2024-05-10", "2024-05-10T00:30:00Z", models.StatusScheduled),
	}

	var res models.TriageResult
	require.NotPanics(t, func() { res = c.Classify(records, caldate.MustParse("2024-05-10")) })

	assert.Equal(t, []string{"bad-time", "ok"}, ids(res.Upcoming))
	assert.Empty(t, res.History)
	assert.Equal(t, 2, res.Excluded)
	assert.Contains(t, buf.String(), "bad-date")
	assert.Contains(t, buf.String(), "unparsable date")
}

func TestClassify_EmptyInputGivesEmptySlices(t *testing.T) {
	res := NewClassifier(zerolog.Nop()).Classify(nil, caldate.MustParse("2024-05-10"))
	assert.NotNil(t, res.Upcoming)
	assert.NotNil(t, res.History)
	assert.Zero(t, res.Excluded)
}

func TestClassify_PartitionAndOrderingLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	statuses := []models.Status{
		models.StatusScheduled, models.StatusConfirmed, models.StatusPending,
		models.StatusInProgress, models.StatusCompleted, models.StatusCancelled,
	}
	today := caldate.MustParse("2024-05-10")
	c := NewClassifier(zerolog.Nop())

	for round := 0; round < 50; round++ {
		var records []models.AppointmentRecord
		nonCancelled := map[string]bool{}
		for i := 0; i < 40; i++ {
			date := today.AddDays(rng.Intn(7) - 3).String()
			start := ""
			if rng.Intn(4) > 0 {
				start = fmt.Sprintf("%sT%02d:%02d:00Z", date, rng.Intn(24), rng.Intn(60))
			}
			st := statuses[rng.Intn(len(statuses))]
			id := fmt.Sprintf("r%d-%d", round, i)
			records = append(records, appt(id, date, start, st))
			if st != models.StatusCancelled {
				nonCancelled[id] = true
			}
		}

		res := c.Classify(records, today)

		seen := map[string]int{}
		for _, id := range append(ids(res.Upcoming), ids(res.History)...) {
			seen[id]++
		}
		require.Len(t, seen, len(nonCancelled))
		for id := range nonCancelled {
			require.Equal(t, 1, seen[id], id)
		}

		for i := 1; i < len(res.Upcoming); i++ {
			a, b := res.Upcoming[i-1], res.Upcoming[i]
			da, db := caldate.MustParse(a.CalendarDate), caldate.MustParse(b.CalendarDate)
			ma, _ := MinuteOfDay(a)
			mb, _ := MinuteOfDay(b)
			require.True(t, da.Before(db) || (da == db && ma <= mb))
		}
		for i := 1; i < len(res.History); i++ {
			a, b := res.History[i-1], res.History[i]
			da, db := caldate.MustParse(a.CalendarDate), caldate.MustParse(b.CalendarDate)
			ma, _ := MinuteOfDay(a)
			mb, _ := MinuteOfDay(b)
			require.True(t, da.After(db) || (da == db && ma >= mb))
		}
	}
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		start string
		want  int
		ok    bool
	}{
		{"2024-05-10T08:00:00Z", 480, true},
		{"2024-05-10T08:05:00.000Z", 485, true},
		{"2024-05-10 13:45:00", 825, true},
		{"14:20", 860, true},
		{"", 0, false},
		{"later", 0, false},
	}
	for _, tc := range cases {
		rec := appt("x", "2024-05-10", tc.start, models.StatusScheduled)
		got, ok := MinuteOfDay(rec)
		assert.Equal(t, tc.want, got, tc.start)
		assert.Equal(t, tc.ok, ok, tc.start)
	}

	got, ok := MinuteOfDay(models.AppointmentRecord{})
	assert.Zero(t, got)
	assert.False(t, ok)
}

func TestVitalsState(t *testing.T) {
	rec := appt("x", "2024-05-10", "", models.StatusScheduled)
	assert.Equal(t, models.VitalsPending, VitalsState(rec))

	rec.Vitals = models.Vitals{}
	assert.Equal(t, models.VitalsPending, VitalsState(rec))

	rec.Vitals = models.Vitals{"bp": ""}
	assert.Equal(t, models.VitalsPending, VitalsState(rec))

	rec.Vitals = models.Vitals{"bp": "120/80"}
	assert.Equal(t, models.VitalsRecorded, VitalsState(rec))
}

package hospitalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	adminModels "github.com/c14220110/poliklinik-dashboard/internal/administrasi/models"
	manajemenModels "github.com/c14220110/poliklinik-dashboard/internal/manajemen/models"
	screeningModels "github.com/c14220110/poliklinik-dashboard/internal/screening/models"
	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var ErrUnexpectedStatus = errors.New("hospital api: unexpected status")

// Client talks to the hospital REST API that owns patients, appointments and
// billing. It never retries: a failed call is reported once and the
// aggregation layer decides the fallback.
type Client struct {
	http     *resty.Client
	pageSize int
	log      zerolog.Logger
}

type Options struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int
}

func NewClient(opts Options, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if opts.Token != "" {
		httpClient.SetAuthToken(opts.Token)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Client{http: httpClient, pageSize: pageSize, log: log}
}

// DailyRevenue calls GET /billing/daily-revenue?date=YYYY-MM-DD. The body is
// returned as sent; unwrapping summary.totalRevenue is the aggregator's job.
func (c *Client) DailyRevenue(ctx context.Context, date caldate.Date) (manajemenModels.DailyRevenueResponse, error) {
	var out manajemenModels.DailyRevenueResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("date", date.String()).
		SetResult(&out).
		Get("/billing/daily-revenue")
	if err := c.check(resp, err, "daily-revenue"); err != nil {
		return manajemenModels.DailyRevenueResponse{}, err
	}
	return out, nil
}

// InvoicePage calls GET /billing/invoices for the first page.
func (c *Client) InvoicePage(ctx context.Context) (adminModels.InvoicePage, error) {
	var out adminModels.InvoicePage
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":  "1",
			"limit": strconv.Itoa(c.pageSize),
		}).
		SetResult(&out).
		Get("/billing/invoices")
	if err := c.check(resp, err, "invoices"); err != nil {
		return adminModels.InvoicePage{}, err
	}
	return out, nil
}

// FetchAppointments calls GET /appointments and accepts either a bare array
// or {"appointments": [...]}.
func (c *Client) FetchAppointments(ctx context.Context) ([]screeningModels.AppointmentRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/appointments")
	if err := c.check(resp, err, "appointments"); err != nil {
		return nil, err
	}
	records, dropped, err := DecodeAppointments(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	if dropped > 0 {
		c.log.Warn().Int("dropped", dropped).Msg("appointments with malformed fields skipped")
	}
	c.log.Debug().Int("count", len(records)).Msg("appointments fetched")
	return records, nil
}

// DecodeAppointments normalizes both collection shapes to a flat slice.
// Elements are decoded one by one; an element that does not fit
// AppointmentRecord is skipped and counted in dropped. Only a body that is not
// a collection at all is an error.
func DecodeAppointments(body []byte) (records []screeningModels.AppointmentRecord, dropped int, err error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []screeningModels.AppointmentRecord{}, 0, nil
	}
	var raw []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, 0, err
		}
	} else {
		var wrapped struct {
			Appointments []json.RawMessage `json:"appointments"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, 0, err
		}
		raw = wrapped.Appointments
	}

	records = make([]screeningModels.AppointmentRecord, 0, len(raw))
	for _, elem := range raw {
		var rec screeningModels.AppointmentRecord
		if err := json.Unmarshal(elem, &rec); err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped, nil
}

func (c *Client) check(resp *resty.Response, err error, endpoint string) error {
	if err != nil {
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("hospital api call failed")
		return fmt.Errorf("hospital api %s: %w", endpoint, err)
	}
	if resp.IsError() {
		c.log.Error().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode()).
			Msg("hospital api returned error")
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, endpoint, resp.StatusCode())
	}
	return nil
}

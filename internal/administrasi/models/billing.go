package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/c14220110/poliklinik-dashboard/pkg/caldate"
	"github.com/c14220110/poliklinik-dashboard/pkg/utils"
)

// Amount accepts JSON numbers and numeric strings ("150000.00"), which is
// how DECIMAL columns come back from some endpoints.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

type InvoicePatient struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// InvoiceRecord keeps every field name the billing endpoints have used.
// Display values are resolved through the ordered fallback chains below.
type InvoiceRecord struct {
	ID            utils.FlexibleID `json:"id"`
	InvoiceNumber *string          `json:"invoice_number,omitempty"`
	Number        *string          `json:"number,omitempty"`
	Patient       *InvoicePatient  `json:"patient,omitempty"`
	PatientName   *string          `json:"patientName,omitempty"`
	Total         *Amount          `json:"total,omitempty"`
	TotalAmount   *Amount          `json:"total_amount,omitempty"`
	Amount        *Amount          `json:"amount,omitempty"`
	Status        string           `json:"status"`
	IssueDate     string           `json:"issue_date,omitempty"`
	DueDate       *string          `json:"due_date,omitempty"`
}

// InvoicePage is the body of GET /billing/invoices.
type InvoicePage struct {
	Invoices []InvoiceRecord `json:"invoices"`
}

// InvoiceView is the row shown in the admin dashboard's recent invoices table.
type InvoiceView struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	PatientName   string  `json:"patient_name"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
}

const DueDateLayout = "02 Jan 2006"

// DisplayNumber: invoice_number, number, then "#" + last four of id.
func (r InvoiceRecord) DisplayNumber() string {
	return utils.FirstOf("#"+utils.LastN(string(r.ID), 4),
		utils.NonEmpty(r.InvoiceNumber),
		utils.NonEmpty(r.Number),
	)
}

// DisplayPatientName: patient.first_name, patientName, then "Unknown".
func (r InvoiceRecord) DisplayPatientName() string {
	var first *string
	if r.Patient != nil {
		first = r.Patient.FirstName
	}
	return utils.FirstOf("Unknown",
		utils.NonEmpty(first),
		utils.NonEmpty(r.PatientName),
	)
}

// ResolvedAmount: total, total_amount, amount, then 0. Zero and non-finite
// values fall through to the next candidate.
func (r InvoiceRecord) ResolvedAmount() float64 {
	return utils.FirstOf[float64](0,
		amountOf(r.Total),
		amountOf(r.TotalAmount),
		amountOf(r.Amount),
	)
}

// DueDateLabel formats due_date as "02 Jan 2006", "N/A" when absent.
// An unparsable due date is shown as sent.
func (r InvoiceRecord) DueDateLabel() string {
	if r.DueDate == nil || strings.TrimSpace(*r.DueDate) == "" {
		return "N/A"
	}
	d, err := caldate.Parse(*r.DueDate)
	if err != nil {
		return strings.TrimSpace(*r.DueDate)
	}
	return d.Format(DueDateLayout)
}

func (r InvoiceRecord) IsPending() bool {
	return r.HasStatus("pending")
}

// HasStatus compares trimmed and case-insensitively.
func (r InvoiceRecord) HasStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), strings.TrimSpace(status))
}

func (r InvoiceRecord) View() InvoiceView {
	return InvoiceView{
		ID:            string(r.ID),
		InvoiceNumber: r.DisplayNumber(),
		PatientName:   r.DisplayPatientName(),
		Amount:        r.ResolvedAmount(),
		Status:        r.Status,
		IssueDate:     r.IssueDate,
		DueDate:       r.DueDateLabel(),
	}
}

func amountOf(a *Amount) utils.Accessor[float64] {
	return func() (float64, bool) {
		if a == nil {
			return 0, false
		}
		f := float64(*a)
		if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
}

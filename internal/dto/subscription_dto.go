package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// PlanInput describes a plan line and, when the plan or its item is missing,
// the values used to create them.
type PlanInput struct {
	Name                 string           `json:"name"`
	ItemCode             string           `json:"item_code"`
	Quantity             *int             `json:"quantity,omitempty"`
	BillingInterval      string           `json:"billing_interval,omitempty"`
	BillingIntervalCount *int             `json:"billing_interval_count,omitempty"`
	Rate                 *decimal.Decimal `json:"rate,omitempty"`
	Description          *string          `json:"description,omitempty"`
}

// IsEmpty reports whether no field was supplied, e.g. for a "plan": {} payload.
func (p *PlanInput) IsEmpty() bool {
	return p == nil || *p == PlanInput{}
}

func (p *PlanInput) Qty() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

type CreateSubscriptionRequest struct {
	PartyType                      string     `json:"party_type"`
	Party                          string     `json:"party"`
	StartDate                      string     `json:"start_date"`
	EndDate                        string     `json:"end_date"`
	Plan                           *PlanInput `json:"plan"`
	Company                        string     `json:"company,omitempty"`
	GenerateInvoiceAt              string     `json:"generate_invoice_at,omitempty"`
	TrialPeriodStart               string     `json:"trial_period_start,omitempty"`
	TrialPeriodEnd                 string     `json:"trial_period_end,omitempty"`
	DaysUntilDue                   int        `json:"days_until_due,omitempty"`
	GenerateNewInvoicesPastDueDate bool       `json:"generate_new_invoices_past_due_date,omitempty"`
	CancelAtPeriodEnd              bool       `json:"cancel_at_period_end,omitempty"`
	SubmitInvoice                  bool       `json:"submit_invoice,omitempty"`
}

type CreateSubscriptionResponse struct {
	Status         string `json:"status"`
	SubscriptionID string `json:"subscription_id"`
	ItemCreated    bool   `json:"item_created"`
	PlanCreated    bool   `json:"plan_created"`
}

// UpdateSubscriptionRequest uses pointers so that only keys present in the
// payload are applied.
type UpdateSubscriptionRequest struct {
	SubscriptionID                 string      `json:"subscription_id"`
	Company                        *string     `json:"company,omitempty"`
	GenerateInvoiceAt              *string     `json:"generate_invoice_at,omitempty"`
	GenerateNewInvoicesPastDueDate *bool       `json:"generate_new_invoices_past_due_date,omitempty"`
	CancelAtPeriodEnd              *bool       `json:"cancel_at_period_end,omitempty"`
	SubmitInvoice                  *bool       `json:"submit_invoice,omitempty"`
	Plans                          []PlanInput `json:"plans,omitempty"`
}

type PlanLine struct {
	Plan string `json:"plan"`
	Qty  int    `json:"qty"`
}

type UpdateSubscriptionResponse struct {
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	UpdatedPlans []PlanLine `json:"updated_plans"`
}

type DeleteSubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id"`
}

type SubscriptionResponse struct {
	Name                           string     `json:"name"`
	PartyType                      string     `json:"party_type"`
	Party                          string     `json:"party"`
	Company                        string     `json:"company"`
	Status                         string     `json:"status"`
	StartDate                      string     `json:"start_date"`
	EndDate                        string     `json:"end_date"`
	GenerateInvoiceAt              string     `json:"generate_invoice_at"`
	TrialPeriodStart               *string    `json:"trial_period_start"`
	TrialPeriodEnd                 *string    `json:"trial_period_end"`
	DaysUntilDue                   int        `json:"days_until_due"`
	GenerateNewInvoicesPastDueDate bool       `json:"generate_new_invoices_past_due_date"`
	CancelAtPeriodEnd              bool       `json:"cancel_at_period_end"`
	SubmitInvoice                  bool       `json:"submit_invoice"`
	Plans                          []PlanLine `json:"plans"`
	CreatedAt                      time.Time  `json:"creation"`
	UpdatedAt                      time.Time  `json:"modified"`
}

type SubscriptionListResponse struct {
	Status string                 `json:"status"`
	Data   []SubscriptionResponse `json:"data"`
}

type PartyTypeResponse struct {
	PartyType string `json:"party_type"`
}

type PartyTypeListResponse struct {
	Status string              `json:"status"`
	Data   []PartyTypeResponse `json:"data"`
}

type InvoiceOptionsResponse struct {
	Status  string   `json:"status"`
	Options []string `json:"options"`
}

func NewSubscriptionResponse(sub *models.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		Name:                           sub.Name,
		PartyType:                      sub.PartyType,
		Party:                          sub.Party,
		Company:                        sub.Company,
		Status:                         sub.Status,
		StartDate:                      time.Time(sub.StartDate).Format(DateLayout),
		EndDate:                        time.Time(sub.EndDate).Format(DateLayout),
		GenerateInvoiceAt:              sub.GenerateInvoiceAt,
		DaysUntilDue:                   sub.DaysUntilDue,
		GenerateNewInvoicesPastDueDate: sub.GenerateNewInvoicesPastDueDate,
		CancelAtPeriodEnd:              sub.CancelAtPeriodEnd,
		SubmitInvoice:                  sub.SubmitInvoice,
		Plans:                          PlanLines(sub.Plans),
		CreatedAt:                      sub.CreatedAt,
		UpdatedAt:                      sub.UpdatedAt,
	}
	if sub.TrialPeriodStart != nil {
		s := time.Time(*sub.TrialPeriodStart).Format(DateLayout)
		resp.TrialPeriodStart = &s
	}
	if sub.TrialPeriodEnd != nil {
		s := time.Time(*sub.TrialPeriodEnd).Format(DateLayout)
		resp.TrialPeriodEnd = &s
	}
	return resp
}

func PlanLines(rows []models.SubscriptionPlanDetail) []PlanLine {
	lines := make([]PlanLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, PlanLine{Plan: r.Plan, Qty: r.Qty})
	}
	return lines
}

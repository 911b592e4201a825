package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	InvoiceAtPeriodEnd   = "End of the current subscription period"
	InvoiceAtPeriodStart = "Beginning of the current subscription period"
	InvoiceAtDaysBefore  = "Days before the current subscription period"
	DefaultInvoiceAt     = InvoiceAtPeriodEnd

	SubscriptionActive   = "Active"
	SubscriptionTrialing = "Trialing"
)

const subscriptionNamePrefix = "SUB-"

// GenerateInvoiceAtOptions lists the accepted values of Subscription.GenerateInvoiceAt.
var GenerateInvoiceAtOptions = []string{
	InvoiceAtPeriodEnd,
	InvoiceAtPeriodStart,
	InvoiceAtDaysBefore,
}

// IsInvoiceAtOption reports whether v is one of GenerateInvoiceAtOptions.
func IsInvoiceAtOption(v string) bool {
	for _, opt := range GenerateInvoiceAtOptions {
		if opt == v {
			return true
		}
	}
	return false
}

type Subscription struct {
	Name                           string                   `gorm:"primaryKey;size:140" json:"name"`
	PartyType                      string                   `gorm:"size:140;not null;index" json:"party_type"`
	Party                          string                   `gorm:"size:140;not null;index" json:"party"`
	Company                        string                   `gorm:"size:140" json:"company"`
	Status                         string                   `gorm:"size:40;not null" json:"status"`
	StartDate                      datatypes.Date           `gorm:"not null;index" json:"start_date"`
	EndDate                        datatypes.Date           `gorm:"not null" json:"end_date"`
	GenerateInvoiceAt              string                   `gorm:"size:140;not null" json:"generate_invoice_at"`
	TrialPeriodStart               *datatypes.Date          `json:"trial_period_start"`
	TrialPeriodEnd                 *datatypes.Date          `json:"trial_period_end"`
	DaysUntilDue                   int                      `gorm:"not null" json:"days_until_due"`
	GenerateNewInvoicesPastDueDate bool                     `gorm:"not null" json:"generate_new_invoices_past_due_date"`
	CancelAtPeriodEnd              bool                     `gorm:"not null" json:"cancel_at_period_end"`
	SubmitInvoice                  bool                     `gorm:"not null" json:"submit_invoice"`
	Plans                          []SubscriptionPlanDetail `gorm:"foreignKey:Parent;references:Name;constraint:OnDelete:CASCADE" json:"plans"`
	CreatedAt                      time.Time                `json:"created_at"`
	UpdatedAt                      time.Time                `json:"updated_at"`
}

// BeforeCreate assigns a generated name when the caller did not set one.
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.Name == "" {
		s.Name = subscriptionNamePrefix + uuid.NewString()
	}
	return nil
}

// SubscriptionPlanDetail is one ordered (plan, qty) row of a Subscription.
type SubscriptionPlanDetail struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	Parent string `gorm:"size:140;not null;index" json:"-"`
	Idx    int    `gorm:"not null" json:"idx"`
	Plan   string `gorm:"size:140;not null" json:"plan"`
	Qty    int    `gorm:"not null" json:"qty"`
}

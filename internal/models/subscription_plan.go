package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	IntervalDay   = "Day"
	IntervalWeek  = "Week"
	IntervalMonth = "Month"
	IntervalYear  = "Year"

	DefaultBillingInterval = IntervalMonth
	PriceFixedRate         = "Fixed Rate"
)

var BillingIntervals = []string{IntervalDay, IntervalWeek, IntervalMonth, IntervalYear}

func IsBillingInterval(v string) bool {
	for _, i := range BillingIntervals {
		if i == v {
			return true
		}
	}
	return false
}

type SubscriptionPlan struct {
	Name                 string          `gorm:"primaryKey;size:140" json:"name"`
	PlanName             string          `gorm:"size:140;not null" json:"plan_name"`
	Item                 string          `gorm:"size:140;not null;index" json:"item"`
	BillingInterval      string          `gorm:"size:20;not null" json:"billing_interval"`
	BillingIntervalCount int             `gorm:"not null" json:"billing_interval_count"`
	Cost                 decimal.Decimal `gorm:"type:numeric(18,6);not null" json:"cost"`
	PriceDetermination   string          `gorm:"size:40;not null" json:"price_determination"`
	Description          string          `gorm:"type:text" json:"description"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

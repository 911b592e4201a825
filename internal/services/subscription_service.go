package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// CreateResult reports the new subscription and which catalog records were created for it.
type CreateResult struct {
	Subscription *models.Subscription
	PartyCreated bool
	ItemCreated  bool
	PlanCreated  bool
}

// List returns every subscription with its plan rows, latest start date first.
func (s *SubscriptionService) List(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plans", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Order("start_date DESC").
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// PartyTypes returns the distinct party types in use, ascending.
func (s *SubscriptionService) PartyTypes(ctx context.Context) ([]string, error) {
	types := []string{}
	err := s.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Distinct().
		Order("party_type ASC").
		Pluck("party_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list party types: %w", err)
	}
	return types, nil
}

// InvoiceOptions returns the accepted generate_invoice_at values.
func (s *SubscriptionService) InvoiceOptions() []string {
	return append([]string(nil), models.GenerateInvoiceAtOptions...)
}

// Create validates req, creates the party, item and plan when they are missing
// and inserts the subscription. Every insert is committed on its own.
func (s *SubscriptionService) Create(ctx context.Context, req *dto.CreateSubscriptionRequest) (*CreateResult, error) {
	required := []struct {
		field   string
		missing bool
	}{
		{"party_type", strings.TrimSpace(req.PartyType) == ""},
		{"party", strings.TrimSpace(req.Party) == ""},
		{"start_date", strings.TrimSpace(req.StartDate) == ""},
		{"end_date", strings.TrimSpace(req.EndDate) == ""},
		{"plan", req.Plan.IsEmpty()},
	}
	for _, r := range required {
		if r.missing {
			return nil, invalid("Missing required field: %s", r.field)
		}
	}

	plan := req.Plan
	if err := validatePlanInput(plan, "Plan must include 'name' and 'item_code'."); err != nil {
		return nil, err
	}

	sub, err := newSubscription(req)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{Subscription: sub}
	if result.PartyCreated, err = ensureParty(ctx, s.db, req.PartyType, req.Party); err != nil {
		return nil, err
	}
	if result.ItemCreated, result.PlanCreated, err = ensureCatalog(ctx, s.db, plan); err != nil {
		return nil, err
	}

	sub.Plans = []models.SubscriptionPlanDetail{{Idx: 1, Plan: plan.Name, Qty: plan.Qty()}}
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return result, nil
}

// newSubscription builds the unsaved document and runs every check that
// must pass before any record is written.
func newSubscription(req *dto.CreateSubscriptionRequest) (*models.Subscription, error) {
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if time.Time(end).Before(time.Time(start)) {
		return nil, invalid("end_date %s cannot be before start_date %s", req.EndDate, req.StartDate)
	}

	invoiceAt := models.DefaultInvoiceAt
	if req.GenerateInvoiceAt != "" {
		if !models.IsInvoiceAtOption(req.GenerateInvoiceAt) {
			return nil, invalidInvoiceAt(req.GenerateInvoiceAt)
		}
		invoiceAt = req.GenerateInvoiceAt
	}
	if req.DaysUntilDue < 0 {
		return nil, invalid("days_until_due cannot be negative")
	}

	sub := &models.Subscription{
		PartyType:                      req.PartyType,
		Party:                          req.Party,
		Company:                        req.Company,
		Status:                         models.SubscriptionActive,
		StartDate:                      start,
		EndDate:                        end,
		GenerateInvoiceAt:              invoiceAt,
		DaysUntilDue:                   req.DaysUntilDue,
		GenerateNewInvoicesPastDueDate: req.GenerateNewInvoicesPastDueDate,
		CancelAtPeriodEnd:              req.CancelAtPeriodEnd,
		SubmitInvoice:                  req.SubmitInvoice,
	}

	hasTrialStart, hasTrialEnd := req.TrialPeriodStart != "", req.TrialPeriodEnd != ""
	if hasTrialStart != hasTrialEnd {
		return nil, invalid("Both trial_period_start and trial_period_end must be set")
	}
	if hasTrialStart {
		trialStart, err := parseDate("trial_period_start", req.TrialPeriodStart)
		if err != nil {
			return nil, err
		}
		trialEnd, err := parseDate("trial_period_end", req.TrialPeriodEnd)
		if err != nil {
			return nil, err
		}
		if time.Time(trialEnd).Before(time.Time(trialStart)) {
			return nil, invalid("trial_period_end cannot be before trial_period_start")
		}
		sub.TrialPeriodStart = &trialStart
		sub.TrialPeriodEnd = &trialEnd
		sub.Status = models.SubscriptionTrialing
	}
	return sub, nil
}

// Update applies the fields present in req and, when plans are given, replaces
// the plan rows. Missing items and plans are created first, one commit each.
func (s *SubscriptionService) Update(ctx context.Context, req *dto.UpdateSubscriptionRequest) ([]dto.PlanLine, error) {
	if strings.TrimSpace(req.SubscriptionID) == "" {
		return nil, invalid("Missing 'subscription_id'")
	}

	sub, err := s.get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	if req.Company != nil {
		sub.Company = *req.Company
	}
	if req.GenerateInvoiceAt != nil {
		if !models.IsInvoiceAtOption(*req.GenerateInvoiceAt) {
			return nil, invalidInvoiceAt(*req.GenerateInvoiceAt)
		}
		sub.GenerateInvoiceAt = *req.GenerateInvoiceAt
	}
	if req.GenerateNewInvoicesPastDueDate != nil {
		sub.GenerateNewInvoicesPastDueDate = *req.GenerateNewInvoicesPastDueDate
	}
	if req.CancelAtPeriodEnd != nil {
		sub.CancelAtPeriodEnd = *req.CancelAtPeriodEnd
	}
	if req.SubmitInvoice != nil {
		sub.SubmitInvoice = *req.SubmitInvoice
	}

	updated := make([]dto.PlanLine, 0, len(req.Plans))
	for i := range req.Plans {
		p := &req.Plans[i]
		if err := validatePlanInput(p, "Each plan must include 'name' and 'item_code'"); err != nil {
			return nil, err
		}
		if _, _, err := ensureCatalog(ctx, s.db, p); err != nil {
			return nil, err
		}
		updated = append(updated, dto.PlanLine{Plan: p.Name, Qty: p.Qty()})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updated) > 0 {
			if err := tx.Where("parent = ?", sub.Name).Delete(&models.SubscriptionPlanDetail{}).Error; err != nil {
				return err
			}
			rows := make([]models.SubscriptionPlanDetail, len(updated))
			for i, line := range updated {
				rows[i] = models.SubscriptionPlanDetail{Parent: sub.Name, Idx: i + 1, Plan: line.Plan, Qty: line.Qty}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
			sub.Plans = rows
		}
		return tx.Omit(clause.Associations).Save(sub).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription %q: %w", sub.Name, err)
	}
	return updated, nil
}

// Delete removes the subscription and its plan rows.
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("Missing subscription_id")
	}

	found, err := exists[models.Subscription](ctx, s.db, "name", id)
	if err != nil {
		return wrapLookup("subscription", id, err)
	}
	if !found {
		return &NotFoundError{SubscriptionID: id}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent = ?", id).Delete(&models.SubscriptionPlanDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete plan rows of %q: %w", id, err)
		}
		res := tx.Where("name = ?", id).Delete(&models.Subscription{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete subscription %q: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return &NotFoundError{SubscriptionID: id}
		}
		return nil
	})
}

// Get loads one subscription with its plan rows.
func (s *SubscriptionService) Get(ctx context.Context, id string) (*models.Subscription, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("Missing subscription_id")
	}
	return s.get(ctx, id)
}

func (s *SubscriptionService) get(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.WithContext(ctx).
		Preload("Plans", func(db *gorm.DB) *gorm.DB { return db.Order("idx ASC") }).
		Where("name = ?", id).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{SubscriptionID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load subscription %q: %w", id, err)
	}
	return &sub, nil
}

// parseDate accepts YYYY-MM-DD and RFC 3339 timestamps.
func parseDate(field, value string) (datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dto.DateLayout, value); err == nil {
		return datatypes.Date(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return datatypes.Date(t.UTC()), nil
	}
	return datatypes.Date{}, invalid("Invalid %s '%s', expected YYYY-MM-DD", field, value)
}

func invalidInvoiceAt(v string) error {
	return invalid("Invalid generate_invoice_at '%s', expected one of: %s", v, strings.Join(models.GenerateInvoiceAtOptions, ", "))
}

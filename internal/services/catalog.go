package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func exists[T any](ctx context.Context, db *gorm.DB, column, value string) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(new(T)).Where(column+" = ?", value).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// validatePlanInput checks the fields used when the plan has to be created.
func validatePlanInput(p *dto.PlanInput, missingMsg string) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.ItemCode) == "" {
		return invalid("%s", missingMsg)
	}
	if p.BillingInterval != "" && !models.IsBillingInterval(p.BillingInterval) {
		return invalid("Invalid billing_interval '%s' for plan '%s'", p.BillingInterval, p.Name)
	}
	if p.BillingIntervalCount != nil && *p.BillingIntervalCount < 1 {
		return invalid("billing_interval_count for plan '%s' cannot be less than 1", p.Name)
	}
	if p.Rate != nil && p.Rate.IsNegative() {
		return invalid("rate for plan '%s' cannot be negative", p.Name)
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return invalid("quantity for plan '%s' must be at least 1", p.Name)
	}
	return nil
}

// ensureParty creates the Customer or Supplier named party when it is missing.
// Other party types are referenced as-is.
func ensureParty(ctx context.Context, db *gorm.DB, partyType, party string) (bool, error) {
	switch strings.ToLower(partyType) {
	case "customer":
		found, err := exists[models.Customer](ctx, db, "name", party)
		if err != nil || found {
			return false, wrapLookup("customer", party, err)
		}
		customer := models.Customer{
			Name:          party,
			CustomerName:  party,
			CustomerType:  models.DefaultCustomerType,
			CustomerGroup: models.DefaultCustomerGroup,
			Territory:     models.DefaultTerritory,
		}
		if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
			return false, fmt.Errorf("failed to create customer %q: %w", party, err)
		}
	case "supplier":
		found, err := exists[models.Supplier](ctx, db, "name", party)
		if err != nil || found {
			return false, wrapLookup("supplier", party, err)
		}
		supplier := models.Supplier{
			Name:          party,
			SupplierName:  party,
			SupplierType:  models.DefaultSupplierType,
			SupplierGroup: models.DefaultSupplierGroup,
		}
		if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
			return false, fmt.Errorf("failed to create supplier %q: %w", party, err)
		}
	default:
		return false, nil
	}
	slog.Info("party created", "party_type", partyType, "party", party)
	return true, nil
}

// ensureItem creates the plan's item when no item with that code exists.
func ensureItem(ctx context.Context, db *gorm.DB, p *dto.PlanInput) (bool, error) {
	found, err := exists[models.Item](ctx, db, "item_code", p.ItemCode)
	if err != nil || found {
		return false, wrapLookup("item", p.ItemCode, err)
	}
	item := models.Item{
		ItemCode:    p.ItemCode,
		ItemName:    p.Name,
		ItemGroup:   models.DefaultItemGroup,
		StockUOM:    models.DefaultStockUOM,
		IsStockItem: false,
		Disabled:    false,
		Description: "Auto-generated item for " + p.Name,
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return false, fmt.Errorf("failed to create item %q: %w", p.ItemCode, err)
	}
	slog.Info("item created", "item_code", p.ItemCode)
	return true, nil
}

// ensurePlan creates the subscription plan when no plan with that name exists.
// An existing plan is reused untouched, even if it bills a different item.
func ensurePlan(ctx context.Context, db *gorm.DB, p *dto.PlanInput) (bool, error) {
	found, err := exists[models.SubscriptionPlan](ctx, db, "name", p.Name)
	if err != nil || found {
		return false, wrapLookup("subscription plan", p.Name, err)
	}
	plan := models.SubscriptionPlan{
		Name:                 p.Name,
		PlanName:             p.Name,
		Item:                 p.ItemCode,
		BillingInterval:      models.DefaultBillingInterval,
		BillingIntervalCount: 1,
		Cost:                 decimal.Zero,
		PriceDetermination:   models.PriceFixedRate,
		Description:          "Auto-created plan for " + p.Name,
	}
	if p.BillingInterval != "" {
		plan.BillingInterval = p.BillingInterval
	}
	if p.BillingIntervalCount != nil {
		plan.BillingIntervalCount = *p.BillingIntervalCount
	}
	if p.Rate != nil {
		plan.Cost = *p.Rate
	}
	if p.Description != nil {
		plan.Description = *p.Description
	}
	if err := db.WithContext(ctx).Create(&plan).Error; err != nil {
		return false, fmt.Errorf("failed to create subscription plan %q: %w", p.Name, err)
	}
	slog.Info("subscription plan created", "plan", p.Name, "item_code", p.ItemCode)
	return true, nil
}

// ensureCatalog makes sure both the item and the plan of p exist.
func ensureCatalog(ctx context.Context, db *gorm.DB, p *dto.PlanInput) (itemCreated, planCreated bool, err error) {
	if itemCreated, err = ensureItem(ctx, db, p); err != nil {
		return false, false, err
	}
	if planCreated, err = ensurePlan(ctx, db, p); err != nil {
		return itemCreated, false, err
	}
	return itemCreated, planCreated, nil
}

func wrapLookup(kind, key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to look up %s %q: %w", kind, key, err)
}

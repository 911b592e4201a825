package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Error log titles, one per endpoint.
const (
	actionList       = "List Subscriptions API Error"
	actionPartyTypes = "Party Types API Error"
	actionGet        = "Get Subscription API Error"
	actionCreate     = "Create Subscription API Error"
	actionUpdate     = "Update Subscription API Error"
	actionDelete     = "Delete Subscription API Error"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	subs, err := h.subscriptionService.List(c.UserContext())
	if err != nil {
		return h.fail(c, actionList, err)
	}

	data := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		data = append(data, dto.NewSubscriptionResponse(&subs[i]))
	}
	return c.JSON(dto.SubscriptionListResponse{Status: dto.StatusSuccess, Data: data})
}

func (h *SubscriptionHandler) PartyTypes(c *fiber.Ctx) error {
	types, err := h.subscriptionService.PartyTypes(c.UserContext())
	if err != nil {
		return h.fail(c, actionPartyTypes, err)
	}

	data := make([]dto.PartyTypeResponse, 0, len(types))
	for _, t := range types {
		data = append(data, dto.PartyTypeResponse{PartyType: t})
	}
	return c.JSON(dto.PartyTypeListResponse{Status: dto.StatusSuccess, Data: data})
}

func (h *SubscriptionHandler) InvoiceOptions(c *fiber.Ctx) error {
	return c.JSON(dto.InvoiceOptionsResponse{
		Status:  dto.StatusSuccess,
		Options: h.subscriptionService.InvoiceOptions(),
	})
}

func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	sub, err := h.subscriptionService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, actionGet, err)
	}
	return c.JSON(fiber.Map{"status": dto.StatusSuccess, "data": dto.NewSubscriptionResponse(sub)})
}

func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := dto.DecodePayload(requestPayload(c), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
	}

	result, err := h.subscriptionService.Create(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, actionCreate, err)
	}

	slog.Info("subscription created",
		"subscription_id", result.Subscription.Name,
		"party_created", result.PartyCreated,
		"item_created", result.ItemCreated,
		"plan_created", result.PlanCreated,
	)
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSubscriptionResponse{
		Status:         dto.StatusSuccess,
		SubscriptionID: result.Subscription.Name,
		ItemCreated:    result.ItemCreated,
		PlanCreated:    result.PlanCreated,
	})
}

func (h *SubscriptionHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateSubscriptionRequest
	id := c.Params("id")
	if err := dto.DecodePayload(requestPayload(c), &req); err != nil {
		// The path alone is a valid (no-op) update.
		if id == "" || !errors.Is(err, dto.ErrEmptyPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
		}
	}
	if id != "" {
		req.SubscriptionID = id
	}

	updated, err := h.subscriptionService.Update(c.UserContext(), &req)
	if err != nil {
		return h.fail(c, actionUpdate, err)
	}

	slog.Info("subscription updated", "subscription_id", req.SubscriptionID, "plans", len(updated))
	return c.JSON(dto.UpdateSubscriptionResponse{
		Status:       dto.StatusSuccess,
		Message:      "Subscription '" + req.SubscriptionID + "' updated successfully",
		UpdatedPlans: updated,
	})
}

// Delete takes the id from the path, or from a {"subscription_id": ...} body.
func (h *SubscriptionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		var req dto.DeleteSubscriptionRequest
		if body := requestPayload(c); len(body) > 0 {
			if err := dto.DecodePayload(body, &req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error(err.Error()))
			}
		}
		id = req.SubscriptionID
	}

	if err := h.subscriptionService.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, actionDelete, err)
	}

	slog.Info("subscription deleted", "subscription_id", id)
	return c.JSON(dto.Success("Subscription '" + id + "' deleted successfully"))
}

// fail maps service errors onto the response. Unexpected errors are logged
// (and so persisted to system_logs) and reported to Sentry.
func (h *SubscriptionHandler) fail(c *fiber.Ctx, action string, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(validationErr.Message))
	}
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Error(notFoundErr.Error()))
	}

	slog.Error(action,
		"action", action,
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err,
	)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error(err.Error()))
}

// requestPayload prefers a "data" form or query field, the way RPC-style
// clients post it, and falls back to the raw body.
func requestPayload(c *fiber.Ctx) []byte {
	if data := c.FormValue("data"); data != "" {
		return []byte(data)
	}
	return c.Body()
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

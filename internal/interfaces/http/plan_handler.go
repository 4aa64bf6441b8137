package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	planapp "github.com/jhoicas/bizplan-api/internal/application/plan"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// PlanHandler handles the plan endpoints (protected). Every mutation
// returns the whole recalculated plan so clients never work with stale
// figures.
type PlanHandler struct {
	uc *planapp.UseCase
}

// NewPlanHandler builds the handler.
func NewPlanHandler(uc *planapp.UseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// Create godoc
// @Summary      Create a plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlanRequest  true  "Plan data"
// @Success      201   {object}  dto.PlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return planError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List my plans
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.PlanListResponse
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid pagination"})
	}
	page.DefaultPage()
	out, err := h.uc.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a plan with computed items
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Plan ID"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Rename a plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Plan ID"
// @Param        body  body  dto.RenamePlanRequest  true  "New name"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [put]
func (h *PlanHandler) Rename(c *fiber.Ctx) error {
	var in dto.RenamePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required"})
	}
	out, err := h.uc.Rename(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a plan
// @Tags         plans
// @Security     Bearer
// @Param        id  path  string  true  "Plan ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return planError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateSettings godoc
// @Summary      Replace plan settings and recalculate
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Plan ID"
// @Param        body  body  entity.PlanSettings  true  "Settings"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/settings [put]
func (h *PlanHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings entity.PlanSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), GetUserID(c), c.Params("id"), settings)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Add a catalog product to the plan
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Plan ID"
// @Param        body  body  dto.AddItemRequest  true  "Product to add"
// @Success      200   {object}  dto.PlanResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/items [post]
func (h *PlanHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productCode is required"})
	}
	out, err := h.uc.AddItem(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Update a plan line item
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "Plan ID"
// @Param        itemId  path  string                 true  "Item ID"
// @Param        body    body  dto.UpdateItemRequest  true  "Fields to change"
// @Success      200     {object}  dto.PlanResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/items/{itemId} [put]
func (h *PlanHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.UpdateItem(c.UserContext(), GetUserID(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remove a plan line item
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "Plan ID"
// @Param        itemId  path  string  true  "Item ID"
// @Success      200     {object}  dto.PlanResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/items/{itemId} [delete]
func (h *PlanHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.UserContext(), GetUserID(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// Recalculate godoc
// @Summary      Recompute a plan without changing any input
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Plan ID"
// @Success      200  {object}  dto.PlanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/recalculate [post]
func (h *PlanHandler) Recalculate(c *fiber.Ctx) error {
	out, err := h.uc.Recalculate(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export a plan as a snapshot JSON file
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Plan ID"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plans/{id}/export [get]
func (h *PlanHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(GetUserID(c), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plan.json"`)
	return c.Send(data)
}

// Import godoc
// @Summary      Import a plan from a snapshot JSON file
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.PlanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/plans/import [post]
func (h *PlanHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), c.Body())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSnapshot) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SNAPSHOT", Message: "snapshot is not a valid plan document"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// planError maps use case errors to HTTP responses.
func planError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "plan or item not found"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

package repository

import "github.com/jhoicas/bizplan-api/internal/domain/entity"

// PlanRepository is the persistence port for plans and their line items.
// GetByID loads the plan with its items in insertion order; implementations
// return (nil, nil) when the plan does not exist.
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Plan, error)
	UpdateMeta(plan *entity.Plan) error // name, settings, updated_at
	Delete(id string) error

	InsertItem(planID string, item *entity.PlanItem, position int) error
	DeleteItem(planID, itemID string) error
	// ReplaceItems overwrites the stored item rows with the freshly
	// recalculated ones (same IDs, new input/calculated payloads).
	ReplaceItems(planID string, items []entity.PlanItem) error
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo PlanRepository port over PostgreSQL. Settings and the item
// payloads (product snapshot, input, calculated) are stored as JSONB so
// the row layout survives engine additions; stable keys (ids, owner,
// position) stay relational.
type PlanRepo struct {
	q Querier
}

// NewPlanRepository builds the persistence adapter for plans.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persists the plan row and its items.
func (r *PlanRepo) Create(p *entity.Plan) error {
	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	query := `
		INSERT INTO plans (id, owner_id, name, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(context.Background(), query,
		p.ID, p.OwnerID, p.Name, settings, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return r.insertItems(p.ID, p.Items)
}

// GetByID loads the plan with its items in stored order, (nil, nil) when
// missing.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	query := `SELECT id, owner_id, name, settings, created_at, updated_at FROM plans WHERE id = $1`
	var p entity.Plan
	var settings []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &settings, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if err := json.Unmarshal(settings, &p.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	items, err := r.loadItems(p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// ListByOwner returns the owner's plans newest first, items included so
// summaries can report item counts.
func (r *PlanRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Plan, error) {
	query := `
		SELECT id, owner_id, name, settings, created_at, updated_at
		FROM plans WHERE owner_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		var settings []byte
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &settings, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if err := json.Unmarshal(settings, &p.Settings); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range list {
		items, err := r.loadItems(p.ID)
		if err != nil {
			return nil, err
		}
		p.Items = items
	}
	return list, nil
}

// UpdateMeta rewrites name, settings and updated_at.
func (r *PlanRepo) UpdateMeta(p *entity.Plan) error {
	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`UPDATE plans SET name = $2, settings = $3, updated_at = $4 WHERE id = $1`,
		p.ID, p.Name, settings, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

// Delete removes the plan; items go with it via ON DELETE CASCADE.
func (r *PlanRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}

// InsertItem appends one item row at the given position.
func (r *PlanRepo) InsertItem(planID string, item *entity.PlanItem, position int) error {
	product, input, calculated, err := marshalItem(item)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO plan_items (plan_id, id, position, product, input, calculated)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		planID, item.ID, position, product, input, calculated,
	)
	if err != nil {
		return fmt.Errorf("insert plan item: %w", err)
	}
	return nil
}

// DeleteItem removes one item row.
func (r *PlanRepo) DeleteItem(planID, itemID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM plan_items WHERE plan_id = $1 AND id = $2`, planID, itemID)
	if err != nil {
		return fmt.Errorf("delete plan item: %w", err)
	}
	return nil
}

// ReplaceItems rewrites all item rows of a plan. The engine recomputes
// every item on every mutation, so a full rewrite is the natural shape.
func (r *PlanRepo) ReplaceItems(planID string, items []entity.PlanItem) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM plan_items WHERE plan_id = $1`, planID); err != nil {
		return fmt.Errorf("clear plan items: %w", err)
	}
	return r.insertItems(planID, items)
}

func (r *PlanRepo) insertItems(planID string, items []entity.PlanItem) error {
	for i := range items {
		if err := r.InsertItem(planID, &items[i], i); err != nil {
			return err
		}
	}
	return nil
}

func (r *PlanRepo) loadItems(planID string) ([]entity.PlanItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, product, input, calculated
		FROM plan_items WHERE plan_id = $1 ORDER BY position`, planID)
	if err != nil {
		return nil, fmt.Errorf("load plan items: %w", err)
	}
	defer rows.Close()

	items := []entity.PlanItem{}
	for rows.Next() {
		var item entity.PlanItem
		var product, input, calculated []byte
		if err := rows.Scan(&item.ID, &product, &input, &calculated); err != nil {
			return nil, fmt.Errorf("scan plan item: %w", err)
		}
		if err := json.Unmarshal(product, &item.Product); err != nil {
			return nil, fmt.Errorf("unmarshal item product: %w", err)
		}
		if err := json.Unmarshal(input, &item.Input); err != nil {
			return nil, fmt.Errorf("unmarshal item input: %w", err)
		}
		if len(calculated) > 0 && string(calculated) != "null" {
			item.Calculated = &entity.ItemCalculated{}
			if err := json.Unmarshal(calculated, item.Calculated); err != nil {
				return nil, fmt.Errorf("unmarshal item calculated: %w", err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func marshalItem(item *entity.PlanItem) (product, input, calculated []byte, err error) {
	if product, err = json.Marshal(item.Product); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal item product: %w", err)
	}
	if input, err = json.Marshal(item.Input); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal item input: %w", err)
	}
	if item.Calculated != nil {
		if calculated, err = json.Marshal(item.Calculated); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal item calculated: %w", err)
		}
	}
	return product, input, calculated, nil
}

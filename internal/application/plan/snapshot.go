package plan

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/planning"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// snapshotDocument is the portable plan file: id, name, creation time,
// settings and items with their full calculated state. The same shape is
// accepted back on import.
type snapshotDocument struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	CreatedAt time.Time           `json:"createdAt"`
	Items     []entity.PlanItem   `json:"items"`
	Settings  entity.PlanSettings `json:"settings"`
}

// Export serializes a plan to its snapshot JSON.
func (uc *UseCase) Export(ownerID, planID string) ([]byte, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	doc := snapshotDocument{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		Items:     p.Items,
		Settings:  p.Settings,
	}
	if doc.Items == nil {
		doc.Items = []entity.PlanItem{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import creates a new plan from a snapshot. The plan gets a fresh ID so
// an import never collides with the plan it was exported from; any
// calculated state in the file is discarded and rebuilt by the engine.
func (uc *UseCase) Import(ctx context.Context, ownerID string, data []byte) (*dto.PlanResponse, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.ErrInvalidSnapshot
	}
	if doc.Name == "" {
		return nil, domain.ErrInvalidSnapshot
	}

	now := time.Now()
	p := &entity.Plan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      doc.Name,
		Settings:  doc.Settings,
		Items:     doc.Items,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := range p.Items {
		if p.Items[i].ID == "" {
			p.Items[i].ID = uuid.New().String()
		}
	}

	// The engine rebuilds the calculated blocks before anything is stored,
	// so the database never holds figures computed elsewhere.
	p.Items = planning.Recalculate(p.Items, p.Settings)

	err := uc.tx.Run(ctx, func(planRepo repository.PlanRepository) error {
		return planRepo.Create(p)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(p)
	return &resp, nil
}

package plan

import (
	"context"

	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// TxRunner runs a callback inside a database transaction with a plan
// repository bound to that transaction. Plan mutations recalculate and
// rewrite every item row, so the meta update and the item rewrite must
// commit together.
type TxRunner interface {
	Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error
}

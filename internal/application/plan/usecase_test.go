package plan_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	planapp "github.com/jhoicas/bizplan-api/internal/application/plan"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// memPlanRepo keeps plans in a map; good enough to drive the use case.
type memPlanRepo struct {
	plans map[string]*entity.Plan
}

func newMemPlanRepo() *memPlanRepo {
	return &memPlanRepo{plans: map[string]*entity.Plan{}}
}

func (r *memPlanRepo) Create(p *entity.Plan) error {
	cp := *p
	cp.Items = append([]entity.PlanItem(nil), p.Items...)
	r.plans[p.ID] = &cp
	return nil
}

func (r *memPlanRepo) GetByID(id string) (*entity.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PlanItem(nil), p.Items...)
	return &cp, nil
}

func (r *memPlanRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Plan, error) {
	var out []*entity.Plan
	for _, p := range r.plans {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPlanRepo) UpdateMeta(p *entity.Plan) error {
	stored, ok := r.plans[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = p.Name
	stored.Settings = p.Settings
	stored.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *memPlanRepo) Delete(id string) error {
	delete(r.plans, id)
	return nil
}

func (r *memPlanRepo) InsertItem(planID string, item *entity.PlanItem, position int) error {
	p, ok := r.plans[planID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Items = append(p.Items, *item)
	return nil
}

func (r *memPlanRepo) DeleteItem(planID, itemID string) error {
	p, ok := r.plans[planID]
	if !ok {
		return domain.ErrNotFound
	}
	kept := p.Items[:0]
	for _, it := range p.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	p.Items = kept
	return nil
}

func (r *memPlanRepo) ReplaceItems(planID string, items []entity.PlanItem) error {
	p, ok := r.plans[planID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Items = append([]entity.PlanItem(nil), items...)
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.Code] = p
	return nil
}

func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	p, ok := r.products[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.Code] = p; return nil }
func (r *memProductRepo) Delete(code string) error       { delete(r.products, code); return nil }

// memTx just hands the callback the shared repo; the use case only cares
// that meta and items are stored together.
type memTx struct {
	repo *memPlanRepo
}

func (t *memTx) Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error {
	return fn(t.repo)
}

func newTestUseCase() (*planapp.UseCase, *memPlanRepo) {
	planRepo := newMemPlanRepo()
	productRepo := &memProductRepo{products: map[string]*entity.Product{
		"BASA-FIL": {
			Code:                   "BASA-FIL",
			NameEN:                 "Basa fillet",
			NameVI:                 "Cá basa phi lê",
			Brand:                  "GODACO",
			Group:                  "Cá",
			ContainerWeightKg:      decimal.NewFromInt(28000),
			DefaultPriceUSDPerTon:  decimal.NewFromInt(2000),
			DefaultSellingPriceVND: decimal.NewFromInt(65000),
			CreatedAt:              time.Now(),
			UpdatedAt:              time.Now(),
		},
	}}
	uc := planapp.NewUseCase(planRepo, productRepo, &memTx{repo: planRepo})
	return uc, planRepo
}

func TestCreatePlan_UsesDefaultSettings(t *testing.T) {
	uc, _ := newTestUseCase()

	resp, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "Q1 2026"})
	require.NoError(t, err)

	assert.Equal(t, "Q1 2026", resp.Name)
	assert.True(t, resp.Settings.ExchangeRateImport.Equal(decimal.NewFromInt(26356)))
	assert.True(t, resp.Settings.ExchangeRateTax.Equal(decimal.NewFromInt(26154)))
	assert.True(t, resp.Settings.SalesSalaryRate.Equal(decimal.NewFromInt(20)))
	assert.Empty(t, resp.Items)
}

func TestAddItem_AppliesDefaultsAndRecalculates(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)

	resp, err := uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	item := resp.Items[0]
	assert.Equal(t, entity.AcquisitionImport, item.Input.Type)
	assert.True(t, item.Input.QuantityKg.Equal(decimal.NewFromInt(28000)))
	assert.True(t, item.Input.Costs.LoanInterestRatePerYear.Equal(decimal.NewFromInt(8)))
	assert.True(t, item.Input.Costs.LoanFirstTransferUSD.Equal(decimal.NewFromInt(10000)))
	assert.True(t, item.Input.Costs.InputVATRate.Equal(decimal.NewFromInt(5)))
	require.NotNil(t, item.Input.OutputVATRate)
	assert.True(t, item.Input.OutputVATRate.Equal(decimal.NewFromInt(5)))

	// Mutation went through the engine before persisting.
	require.NotNil(t, item.Calculated)
	assert.True(t, item.Calculated.TotalRevenue.IsPositive())
}

func TestAddItem_UnknownProduct(t *testing.T) {
	uc, _ := newTestUseCase()
	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)

	_, err = uc.AddItem(context.Background(), "owner-1", created.ID, dto.AddItemRequest{ProductCode: "NOPE"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItem_PartialMerge(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)
	resp, err := uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	qty := decimal.NewFromInt(10000)
	customs := decimal.NewFromInt(3_000_000)
	resp, err = uc.UpdateItem(ctx, "owner-1", created.ID, itemID, dto.UpdateItemRequest{
		QuantityKg: &qty,
		Costs:      &dto.UpdateItemCosts{CustomsFee: &customs},
	})
	require.NoError(t, err)

	item := resp.Items[0]
	assert.True(t, item.Input.QuantityKg.Equal(qty))
	assert.True(t, item.Input.Costs.CustomsFee.Equal(customs))
	// Untouched fields survive the merge.
	assert.True(t, item.Input.Costs.LoanFirstTransferUSD.Equal(decimal.NewFromInt(10000)))
	assert.True(t, item.Input.PriceUSDPerTon.Equal(decimal.NewFromInt(2000)))
}

func TestRemoveItem_RecalculatesRemaining(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)
	resp, err := uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	resp, err = uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	firstRent := resp.Items[0].Calculated.Rent

	resp, err = uc.RemoveItem(ctx, "owner-1", created.ID, resp.Items[1].ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	// The survivor now absorbs the whole monthly rent instead of half.
	assert.True(t, resp.Items[0].Calculated.Rent.GreaterThan(firstRent))
}

func TestAddItem_RejectsNegativeQuantity(t *testing.T) {
	uc, _ := newTestUseCase()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)

	qty := decimal.NewFromInt(-100)
	_, err = uc.AddItem(context.Background(), "owner-1", created.ID, dto.AddItemRequest{
		ProductCode: "BASA-FIL",
		QuantityKg:  &qty,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItem_RejectsNegativeInputs(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)
	resp, err := uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	qty := decimal.NewFromInt(-5000)
	_, err = uc.UpdateItem(ctx, "owner-1", created.ID, itemID, dto.UpdateItemRequest{QuantityKg: &qty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price := decimal.NewFromInt(-2000)
	_, err = uc.UpdateItem(ctx, "owner-1", created.ID, itemID, dto.UpdateItemRequest{PriceUSDPerTon: &price})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fee := decimal.NewFromInt(-1)
	_, err = uc.UpdateItem(ctx, "owner-1", created.ID, itemID, dto.UpdateItemRequest{
		Costs: &dto.UpdateItemCosts{CustomsFee: &fee},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nothing was persisted: the stored line still carries the defaults.
	stored, err := uc.Get("owner-1", created.ID)
	require.NoError(t, err)
	item := stored.Items[0]
	assert.True(t, item.Input.QuantityKg.Equal(decimal.NewFromInt(28000)))
	assert.True(t, item.Input.PriceUSDPerTon.Equal(decimal.NewFromInt(2000)))
	assert.True(t, item.Calculated.TotalCOGS.IsPositive())
}

func TestUpdateSettings_RejectsNegativeRate(t *testing.T) {
	uc, _ := newTestUseCase()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)

	settings := entity.DefaultPlanSettings()
	settings.SalesSalaryRate = decimal.NewFromInt(-20)
	_, err = uc.UpdateSettings(context.Background(), "owner-1", created.ID, settings)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecalculate_IsIdempotentOnInputs(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "plan"})
	require.NoError(t, err)
	resp, err := uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)
	before := resp.Items[0].Calculated.NetProfit

	resp, err = uc.Recalculate(ctx, "owner-1", created.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Calculated.NetProfit.Equal(before))
}

func TestPlanOwnership_HiddenFromOtherUsers(t *testing.T) {
	uc, _ := newTestUseCase()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "private"})
	require.NoError(t, err)

	_, err = uc.Get("owner-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

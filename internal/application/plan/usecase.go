package plan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/planning"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// UseCase plan lifecycle: create, list, rename, delete, item mutations and
// settings updates. Every mutation that touches the numbers runs the full
// recalculation before anything is persisted, so stored plans are always
// internally consistent.
type UseCase struct {
	planRepo    repository.PlanRepository
	productRepo repository.ProductRepository
	tx          TxRunner
}

// NewUseCase builds the plan use case.
func NewUseCase(planRepo repository.PlanRepository, productRepo repository.ProductRepository, tx TxRunner) *UseCase {
	return &UseCase{planRepo: planRepo, productRepo: productRepo, tx: tx}
}

// Create starts a new plan. Nil settings mean the standard defaults.
func (uc *UseCase) Create(ownerID string, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	settings := entity.DefaultPlanSettings()
	if in.Settings != nil {
		if err := validateSettings(*in.Settings); err != nil {
			return nil, err
		}
		settings = *in.Settings
	}
	now := time.Now()
	p := &entity.Plan{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Settings:  settings,
		Items:     []entity.PlanItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.planRepo.Create(p); err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(p)
	return &resp, nil
}

// Get loads a plan with its items. Plans of other owners read as missing.
func (uc *UseCase) Get(ownerID, planID string) (*dto.PlanResponse, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(p)
	return &resp, nil
}

// List returns the owner's plans, newest first.
func (uc *UseCase) List(ownerID string, limit, offset int) (*dto.PlanListResponse, error) {
	list, err := uc.planRepo.ListByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanSummary, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewPlanSummary(p))
	}
	return &dto.PlanListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Rename changes the plan name.
func (uc *UseCase) Rename(ownerID, planID string, in dto.RenamePlanRequest) (*dto.PlanResponse, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.UpdatedAt = time.Now()
	if err := uc.planRepo.UpdateMeta(p); err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(p)
	return &resp, nil
}

// Delete removes a plan with all its items.
func (uc *UseCase) Delete(ownerID, planID string) error {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return err
	}
	return uc.planRepo.Delete(p.ID)
}

// UpdateSettings replaces the shared settings and recalculates the whole
// plan, since every allocated figure depends on them.
func (uc *UseCase) UpdateSettings(ctx context.Context, ownerID, planID string, settings entity.PlanSettings) (*dto.PlanResponse, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	p.Settings = settings
	return uc.recalcAndStore(ctx, p)
}

// AddItem adds a catalog product to the plan. The line starts from the
// product's default prices plus the standard cost defaults of a new line
// (8%/yr loan at a 10,000 USD first tranche over 30 days, 20 days of
// post-clearance storage at 150 VND/kg/day, 5% VAT both ways, 1,300
// VND/kg warehouse handling, 5M VND purchasing service per container).
func (uc *UseCase) AddItem(ctx context.Context, ownerID, planID string, in dto.AddItemRequest) (*dto.PlanResponse, error) {
	if err := validateAddItem(in); err != nil {
		return nil, err
	}
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByCode(in.ProductCode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	item := newItemFromProduct(product)
	if in.Type != nil {
		item.Input.Type = in.Type.Normalize()
	}
	if in.QuantityKg != nil {
		item.Input.QuantityKg = *in.QuantityKg
	}

	p.Items = append(p.Items, item)
	return uc.recalcAndStore(ctx, p)
}

// UpdateItem applies the non-nil fields of the request to one line and
// recalculates the plan.
func (uc *UseCase) UpdateItem(ctx context.Context, ownerID, planID, itemID string, in dto.UpdateItemRequest) (*dto.PlanResponse, error) {
	if err := validateItemUpdate(in); err != nil {
		return nil, err
	}
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range p.Items {
		if p.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	applyItemUpdate(&p.Items[idx].Input, in)
	return uc.recalcAndStore(ctx, p)
}

// RemoveItem drops one line and recalculates the rest: the shared
// overheads redistribute over the remaining quantity.
func (uc *UseCase) RemoveItem(ctx context.Context, ownerID, planID, itemID string) (*dto.PlanResponse, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	kept := p.Items[:0]
	found := false
	for _, it := range p.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	p.Items = kept
	return uc.recalcAndStore(ctx, p)
}

// Recalculate forces a full engine run without changing any input. Useful
// after the engine formulas change, or to repair a plan whose stored
// figures predate a migration.
func (uc *UseCase) Recalculate(ctx context.Context, ownerID, planID string) (*dto.PlanResponse, error) {
	p, err := uc.loadOwned(ownerID, planID)
	if err != nil {
		return nil, err
	}
	return uc.recalcAndStore(ctx, p)
}

// loadOwned fetches the plan and hides it when it belongs to someone else.
func (uc *UseCase) loadOwned(ownerID, planID string) (*entity.Plan, error) {
	p, err := uc.planRepo.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// recalcAndStore runs the engine and persists meta + items atomically.
func (uc *UseCase) recalcAndStore(ctx context.Context, p *entity.Plan) (*dto.PlanResponse, error) {
	p.Items = planning.Recalculate(p.Items, p.Settings)
	p.UpdatedAt = time.Now()

	err := uc.tx.Run(ctx, func(planRepo repository.PlanRepository) error {
		if err := planRepo.UpdateMeta(p); err != nil {
			return err
		}
		return planRepo.ReplaceItems(p.ID, p.Items)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(p)
	return &resp, nil
}

func newItemFromProduct(product *entity.Product) entity.PlanItem {
	return entity.PlanItem{
		ID:      uuid.New().String(),
		Product: *product,
		Input: entity.ItemInput{
			Type:                  entity.AcquisitionImport,
			QuantityKg:            product.ContainerWeightKg,
			PriceUSDPerTon:        product.DefaultPriceUSDPerTon,
			DomesticPriceVNDPerKg: product.DefaultDomesticPriceVND,
			SellingPriceVNDPerKg:  product.DefaultSellingPriceVND,
			OutputVATRate:         dec(5),
			Costs: entity.ItemCosts{
				GeneralWarehouseRatePerKg:    decimal.NewFromInt(1300),
				LoanInterestRatePerYear:      decimal.NewFromInt(8),
				LoanFirstTransferUSD:         decimal.NewFromInt(10000),
				LoanFirstTransferDays:        decimal.NewFromInt(30),
				StorageDays:                  decimal.NewFromInt(20),
				StorageRatePerKgDay:          decimal.NewFromInt(150),
				InputVATRate:                 decimal.NewFromInt(5),
				PurchasingFeeMillionsPerCont: decimal.NewFromInt(5),
			},
		},
	}
}

func applyItemUpdate(input *entity.ItemInput, in dto.UpdateItemRequest) {
	if in.Type != nil {
		input.Type = in.Type.Normalize()
	}
	if in.QuantityKg != nil {
		input.QuantityKg = *in.QuantityKg
	}
	if in.PriceUSDPerTon != nil {
		input.PriceUSDPerTon = *in.PriceUSDPerTon
	}
	if in.DomesticPriceVNDPerKg != nil {
		input.DomesticPriceVNDPerKg = *in.DomesticPriceVNDPerKg
	}
	if in.SellingPriceVNDPerKg != nil {
		input.SellingPriceVNDPerKg = *in.SellingPriceVNDPerKg
	}
	if in.OutputVATRate != nil {
		v := *in.OutputVATRate
		input.OutputVATRate = &v
	}
	if in.Outputs != nil {
		input.Outputs = in.Outputs
	}
	if in.MfgCosts != nil {
		v := *in.MfgCosts
		input.MfgCosts = &v
	}
	if in.ByProducts != nil {
		v := *in.ByProducts
		input.ByProducts = &v
	}
	if in.Costs != nil {
		applyCostUpdate(&input.Costs, *in.Costs)
	}
}

func applyCostUpdate(costs *entity.ItemCosts, in dto.UpdateItemCosts) {
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&costs.CustomsFee, in.CustomsFee)
	set(&costs.QuarantineFee, in.QuarantineFee)
	set(&costs.ContainerRentalFee, in.ContainerRentalFee)
	set(&costs.PortStorageFee, in.PortStorageFee)
	set(&costs.GeneralWarehouseRatePerKg, in.GeneralWarehouseRatePerKg)
	set(&costs.LoanInterestRatePerYear, in.LoanInterestRatePerYear)
	set(&costs.LoanFirstTransferUSD, in.LoanFirstTransferUSD)
	set(&costs.LoanFirstTransferDays, in.LoanFirstTransferDays)
	set(&costs.StorageDays, in.StorageDays)
	set(&costs.StorageRatePerKgDay, in.StorageRatePerKgDay)
	set(&costs.InputVATRate, in.InputVATRate)
	set(&costs.PurchasingFeeMillionsPerCont, in.PurchasingFeeMillionsPerCont)
	set(&costs.BuyerDeliveryFee, in.BuyerDeliveryFee)
	set(&costs.OtherPurchaseCosts, in.OtherPurchaseCosts)
	set(&costs.OtherSellingCosts, in.OtherSellingCosts)
}

func dec(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

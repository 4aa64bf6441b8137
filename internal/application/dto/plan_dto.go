package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// CreatePlanRequest input to create a plan. Settings are optional; a nil
// value starts the plan on the standard defaults.
type CreatePlanRequest struct {
	Name     string               `json:"name" validate:"required,min=1,max=200"`
	Settings *entity.PlanSettings `json:"settings"`
}

// RenamePlanRequest changes the plan name.
type RenamePlanRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// AddItemRequest adds a catalog product to a plan. Quantity and type are
// optional; everything else starts from the product defaults plus the
// standard cost defaults and is edited afterwards via UpdateItemRequest.
type AddItemRequest struct {
	ProductCode string                  `json:"productCode" validate:"required"`
	Type        *entity.AcquisitionType `json:"type"`
	QuantityKg  *decimal.Decimal        `json:"quantityInKg"`
}

// UpdateItemCosts partial update of the per-line cost inputs. Only
// non-nil fields are applied.
type UpdateItemCosts struct {
	CustomsFee                *decimal.Decimal `json:"customsFee"`
	QuarantineFee             *decimal.Decimal `json:"quarantineFee"`
	ContainerRentalFee        *decimal.Decimal `json:"containerRentalFee"`
	PortStorageFee            *decimal.Decimal `json:"portStorageFee"`
	GeneralWarehouseRatePerKg *decimal.Decimal `json:"generalWarehouseCostRatePerKg"`

	LoanInterestRatePerYear *decimal.Decimal `json:"loanInterestRatePerYear"`
	LoanFirstTransferUSD    *decimal.Decimal `json:"loanFirstTransferUSD"`
	LoanFirstTransferDays   *decimal.Decimal `json:"loanFirstTransferInterestDays"`
	StorageDays             *decimal.Decimal `json:"postClearanceStorageDays"`
	StorageRatePerKgDay     *decimal.Decimal `json:"postClearanceStorageRatePerKgDay"`

	InputVATRate *decimal.Decimal `json:"importVatRate"`

	PurchasingFeeMillionsPerCont *decimal.Decimal `json:"purchasingServiceFeeInMillionsPerCont"`
	BuyerDeliveryFee             *decimal.Decimal `json:"buyerDeliveryFee"`
	OtherPurchaseCosts           *decimal.Decimal `json:"otherInternationalCosts"`
	OtherSellingCosts            *decimal.Decimal `json:"otherSellingCosts"`
}

// UpdateItemRequest partial update of a line item's editable fields. Only
// non-nil fields are applied; the manufacturing blocks replace the stored
// value wholesale when present.
type UpdateItemRequest struct {
	Type                  *entity.AcquisitionType `json:"type"`
	QuantityKg            *decimal.Decimal        `json:"quantityInKg"`
	PriceUSDPerTon        *decimal.Decimal        `json:"priceUSDPerTon"`
	DomesticPriceVNDPerKg *decimal.Decimal        `json:"domesticPurchasePriceVNDPerKg"`
	SellingPriceVNDPerKg  *decimal.Decimal        `json:"sellingPriceVNDPerKg"`
	OutputVATRate         *decimal.Decimal        `json:"outputVatRate"`

	Outputs    []entity.ManufacturingOutput `json:"manufacturingOutputs"`
	MfgCosts   *entity.ManufacturingCosts   `json:"manufacturingCosts"`
	ByProducts *entity.ByProductRecovery    `json:"manufacturingByProducts"`

	Costs *UpdateItemCosts `json:"costs"`
}

// PlanResponse full plan view: settings plus fully computed items.
type PlanResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Settings  entity.PlanSettings `json:"settings"`
	Items     []entity.PlanItem   `json:"items"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// PlanSummary list view without items.
type PlanSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanListResponse paginated plan listing.
type PlanListResponse struct {
	Items []PlanSummary `json:"items"`
	Page  PageResponse  `json:"page"`
}

// NewPlanResponse maps the entity to its API view.
func NewPlanResponse(p *entity.Plan) PlanResponse {
	items := p.Items
	if items == nil {
		items = []entity.PlanItem{}
	}
	return PlanResponse{
		ID:        p.ID,
		Name:      p.Name,
		Settings:  p.Settings,
		Items:     items,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewPlanSummary maps the entity to its list view.
func NewPlanSummary(p *entity.Plan) PlanSummary {
	return PlanSummary{
		ID:        p.ID,
		Name:      p.Name,
		ItemCount: len(p.Items),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

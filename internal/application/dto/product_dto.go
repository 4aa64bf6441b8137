package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
)

// CreateProductRequest input to create a catalog entry.
type CreateProductRequest struct {
	Code                    string          `json:"code" validate:"required,min=1,max=100"`
	NameEN                  string          `json:"nameEN" validate:"required,min=1,max=200"`
	NameVI                  string          `json:"nameVI"`
	Brand                   string          `json:"brand"`
	Group                   string          `json:"group"`
	ContainerWeightKg       decimal.Decimal `json:"defaultWeightKg"`
	DefaultPriceUSDPerTon   decimal.Decimal `json:"defaultPriceUSDPerTon"`
	DefaultSellingPriceVND  decimal.Decimal `json:"defaultSellingPriceVND"`
	DefaultDomesticPriceVND decimal.Decimal `json:"defaultDomesticPurchasePriceVND"`
}

// UpdateProductRequest partial update of a catalog entry (Code is immutable).
type UpdateProductRequest struct {
	NameEN                  *string          `json:"nameEN" validate:"omitempty,min=1,max=200"`
	NameVI                  *string          `json:"nameVI"`
	Brand                   *string          `json:"brand"`
	Group                   *string          `json:"group"`
	ContainerWeightKg       *decimal.Decimal `json:"defaultWeightKg"`
	DefaultPriceUSDPerTon   *decimal.Decimal `json:"defaultPriceUSDPerTon"`
	DefaultSellingPriceVND  *decimal.Decimal `json:"defaultSellingPriceVND"`
	DefaultDomesticPriceVND *decimal.Decimal `json:"defaultDomesticPurchasePriceVND"`
}

// ProductResponse catalog entry view.
type ProductResponse struct {
	Code                    string          `json:"code"`
	NameEN                  string          `json:"nameEN"`
	NameVI                  string          `json:"nameVI"`
	Brand                   string          `json:"brand"`
	Group                   string          `json:"group"`
	ContainerWeightKg       decimal.Decimal `json:"defaultWeightKg"`
	DefaultPriceUSDPerTon   decimal.Decimal `json:"defaultPriceUSDPerTon"`
	DefaultSellingPriceVND  decimal.Decimal `json:"defaultSellingPriceVND"`
	DefaultDomesticPriceVND decimal.Decimal `json:"defaultDomesticPurchasePriceVND"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ProductListResponse paginated catalog listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewProductResponse maps the entity to its API view.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		Code:                    p.Code,
		NameEN:                  p.NameEN,
		NameVI:                  p.NameVI,
		Brand:                   p.Brand,
		Group:                   p.Group,
		ContainerWeightKg:       p.ContainerWeightKg,
		DefaultPriceUSDPerTon:   p.DefaultPriceUSDPerTon,
		DefaultSellingPriceVND:  p.DefaultSellingPriceVND,
		DefaultDomesticPriceVND: p.DefaultDomesticPriceVND,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

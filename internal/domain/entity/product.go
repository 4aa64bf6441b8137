package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry (frozen meat / seafood SKU). Code is the unique
// key used when adding the product to a plan. Default prices pre-fill the
// line-item form; ContainerWeightKg is the reference weight of one container
// and drives the container count in the cost engine.
type Product struct {
	Code                    string          `json:"code"`
	NameEN                  string          `json:"nameEN"`
	NameVI                  string          `json:"nameVI"`
	Brand                   string          `json:"brand"`
	Group                   string          `json:"group"`
	ContainerWeightKg       decimal.Decimal `json:"defaultWeightKg"`
	DefaultPriceUSDPerTon   decimal.Decimal `json:"defaultPriceUSDPerTon"`
	DefaultSellingPriceVND  decimal.Decimal `json:"defaultSellingPriceVND"`
	DefaultDomesticPriceVND decimal.Decimal `json:"defaultDomesticPurchasePriceVND,omitempty"`
	CreatedAt               time.Time       `json:"-"`
	UpdatedAt               time.Time       `json:"-"`
}

// seed_products loads the starting frozen meat and seafood catalog into
// the products table. Safe to run repeatedly: existing codes are skipped.
//
// Usage: go run ./cmd/seed_products
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bizplan-api/pkg/config"
)

type seedProduct struct {
	code        string
	nameEN      string
	nameVI      string
	brand       string
	group       string
	weightKg    int64
	usdPerTon   float64
	sellingVND  int64
	domesticVND int64
}

var catalog = []seedProduct{
	{"TRAU-US-NAMUA", "Buffalo meat fore quarter", "Thịt trâu nạm ức", "Allana", "Thịt trâu", 28000, 3250, 95000, 0},
	{"TRAU-US-BAPDUI", "Buffalo meat topside", "Thịt trâu bắp đùi", "Allana", "Thịt trâu", 28000, 3600, 105000, 0},
	{"BO-UC-BAVAI", "Beef chuck roll", "Thịt bò ba vai", "Teys", "Thịt bò", 25000, 5200, 165000, 0},
	{"GA-US-DUI", "Chicken leg quarter", "Đùi gà góc tư", "Tyson", "Thịt gà", 27000, 1150, 38000, 0},
	{"GA-US-CANH", "Chicken mid-joint wing", "Cánh gà giữa", "Tyson", "Thịt gà", 27000, 3100, 92000, 0},
	{"HEO-NGA-BAROI", "Pork belly", "Ba rọi heo", "Miratorg", "Thịt heo", 26000, 3050, 98000, 0},
	{"HEO-NGA-NACVAI", "Pork collar", "Nạc vai heo", "Miratorg", "Thịt heo", 26000, 2850, 90000, 0},
	{"BASA-FIL", "Basa fillet", "Cá basa phi lê", "GODACO", "Thủy sản", 28000, 2050, 62000, 45000},
	{"CA-THU-NGUYEN", "Whole mackerel", "Cá thu nguyên con", "Seaprodex", "Thủy sản", 28000, 0, 72000, 55000},
	{"TOM-THE-VO", "Shell-on vannamei shrimp", "Tôm thẻ nguyên vỏ", "Minh Phú", "Thủy sản", 24000, 0, 185000, 150000},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewProductRepository(pool)
	created, skipped := 0, 0
	for _, s := range catalog {
		existing, err := repo.GetByCode(s.code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check %s: %v\n", s.code, err)
			os.Exit(1)
		}
		if existing != nil {
			skipped++
			continue
		}
		now := time.Now()
		p := &entity.Product{
			Code:                    s.code,
			NameEN:                  s.nameEN,
			NameVI:                  s.nameVI,
			Brand:                   s.brand,
			Group:                   s.group,
			ContainerWeightKg:       decimal.NewFromInt(s.weightKg),
			DefaultPriceUSDPerTon:   decimal.NewFromFloat(s.usdPerTon),
			DefaultSellingPriceVND:  decimal.NewFromInt(s.sellingVND),
			DefaultDomesticPriceVND: decimal.NewFromInt(s.domesticVND),
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if err := repo.Create(p); err != nil {
			fmt.Fprintf(os.Stderr, "insert %s: %v\n", s.code, err)
			os.Exit(1)
		}
		created++
	}
	fmt.Printf("catalog seed done: %d created, %d skipped\n", created, skipped)
}

package plan_test

import (
	"context"
	"encoding/json"
	"errors"
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

// failTx simulates the transaction never reaching the database.
type failTx struct{}

func (failTx) Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error {
	return errors.New("connection lost")
}

func TestSnapshot_ExportImportRoundTrip(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create("owner-1", dto.CreatePlanRequest{Name: "export me"})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, "owner-1", created.ID, dto.AddItemRequest{ProductCode: "BASA-FIL"})
	require.NoError(t, err)

	data, err := uc.Export("owner-1", created.ID)
	require.NoError(t, err)

	// The document carries the portable shape.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"id", "name", "createdAt", "items", "settings"} {
		assert.Contains(t, doc, key)
	}

	imported, err := uc.Import(ctx, "owner-2", data)
	require.NoError(t, err)

	assert.Equal(t, "export me", imported.Name)
	assert.NotEqual(t, created.ID, imported.ID)
	require.Len(t, imported.Items, 1)

	// Figures are rebuilt, not trusted from the file.
	require.NotNil(t, imported.Items[0].Calculated)
	assert.True(t, imported.Items[0].Calculated.TotalRevenue.IsPositive())
	assert.True(t, imported.Settings.ExchangeRateImport.Equal(decimal.NewFromInt(26356)))
}

func TestSnapshot_ImportNeverStoresFileFigures(t *testing.T) {
	uc, planRepo := newTestUseCase()

	// A snapshot whose calculated block was tampered with by hand.
	bogus := decimal.NewFromInt(999_999_999_999)
	doc := map[string]any{
		"id":        "old-id",
		"name":      "tampered",
		"createdAt": time.Now(),
		"settings":  entity.DefaultPlanSettings(),
		"items": []entity.PlanItem{{
			ID: "item-1",
			Product: entity.Product{
				Code:              "BASA-FIL",
				ContainerWeightKg: decimal.NewFromInt(28000),
			},
			Input: entity.ItemInput{
				QuantityKg:           decimal.NewFromInt(28000),
				PriceUSDPerTon:       decimal.NewFromInt(2000),
				SellingPriceVNDPerKg: decimal.NewFromInt(65000),
			},
			Calculated: &entity.ItemCalculated{NetProfit: bogus},
		}},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	imported, err := uc.Import(context.Background(), "owner-1", data)
	require.NoError(t, err)

	// The row written by Create already carries engine figures, not the
	// file's; there is no window with trusted foreign numbers.
	stored := planRepo.plans[imported.ID]
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	require.NotNil(t, stored.Items[0].Calculated)
	assert.False(t, stored.Items[0].Calculated.NetProfit.Equal(bogus))
	assert.True(t, stored.Items[0].Calculated.NetProfit.Equal(imported.Items[0].Calculated.NetProfit))
}

func TestSnapshot_ImportFailedStoreLeavesNothing(t *testing.T) {
	planRepo := newMemPlanRepo()
	uc := planapp.NewUseCase(planRepo, &memProductRepo{products: map[string]*entity.Product{}}, failTx{})

	_, err := uc.Import(context.Background(), "owner-1", []byte(`{"name":"plan","items":[]}`))
	require.Error(t, err)
	assert.Empty(t, planRepo.plans)
}

func TestSnapshot_ImportRejectsGarbage(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Import(context.Background(), "owner-1", []byte("{not json"))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)

	_, err = uc.Import(context.Background(), "owner-1", []byte(`{"items":[]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	planapp "github.com/jhoicas/bizplan-api/internal/application/plan"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
	apphttp "github.com/jhoicas/bizplan-api/internal/interfaces/http"
)

type stubPlanRepo struct {
	plans map[string]*entity.Plan
}

func (r *stubPlanRepo) Create(p *entity.Plan) error {
	cp := *p
	cp.Items = append([]entity.PlanItem(nil), p.Items...)
	r.plans[p.ID] = &cp
	return nil
}

func (r *stubPlanRepo) GetByID(id string) (*entity.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PlanItem(nil), p.Items...)
	return &cp, nil
}

func (r *stubPlanRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Plan, error) {
	return nil, nil
}

func (r *stubPlanRepo) UpdateMeta(p *entity.Plan) error {
	stored, ok := r.plans[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = p.Name
	stored.Settings = p.Settings
	stored.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *stubPlanRepo) Delete(id string) error { delete(r.plans, id); return nil }

func (r *stubPlanRepo) InsertItem(planID string, item *entity.PlanItem, position int) error {
	return nil
}

func (r *stubPlanRepo) DeleteItem(planID, itemID string) error { return nil }

func (r *stubPlanRepo) ReplaceItems(planID string, items []entity.PlanItem) error {
	p, ok := r.plans[planID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Items = append([]entity.PlanItem(nil), items...)
	return nil
}

type stubProductRepo struct{}

func (stubProductRepo) Create(p *entity.Product) error { return nil }

func (stubProductRepo) GetByCode(code string) (*entity.Product, error) {
	if code != "BASA-FIL" {
		return nil, nil
	}
	return &entity.Product{
		Code:                   "BASA-FIL",
		NameEN:                 "Basa fillet",
		ContainerWeightKg:      decimal.NewFromInt(28000),
		DefaultPriceUSDPerTon:  decimal.NewFromInt(2000),
		DefaultSellingPriceVND: decimal.NewFromInt(65000),
		CreatedAt:              time.Now(),
		UpdatedAt:              time.Now(),
	}, nil
}

func (stubProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (stubProductRepo) Update(p *entity.Product) error                    { return nil }
func (stubProductRepo) Delete(code string) error                          { return nil }

type stubTx struct{ repo *stubPlanRepo }

func (t stubTx) Run(ctx context.Context, fn func(planRepo repository.PlanRepository) error) error {
	return fn(t.repo)
}

func buildPlanApp() *fiber.App {
	planRepo := &stubPlanRepo{plans: map[string]*entity.Plan{}}
	uc := planapp.NewUseCase(planRepo, stubProductRepo{}, stubTx{repo: planRepo})
	h := apphttp.NewPlanHandler(uc)

	app := fiber.New()
	plans := app.Group("/api/plans", apphttp.AuthMiddleware(testJWTSecret))
	plans.Post("/", h.Create)
	plans.Post("/:id/items", h.AddItem)
	plans.Patch("/:id/items/:itemId", h.UpdateItem)
	plans.Put("/:id/settings", h.UpdateSettings)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", validToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodePlan(t *testing.T, resp *http.Response) dto.PlanResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.PlanResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestPlanHandler_RejectsNegativeQuantity(t *testing.T) {
	app := buildPlanApp()

	resp := doJSON(t, app, http.MethodPost, "/api/plans/", `{"name":"plan"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plan := decodePlan(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/plans/"+plan.ID+"/items", `{"productCode":"BASA-FIL"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan = decodePlan(t, resp)
	require.Len(t, plan.Items, 1)
	itemID := plan.Items[0].ID

	resp = doJSON(t, app, http.MethodPatch,
		"/api/plans/"+plan.ID+"/items/"+itemID, `{"quantityInKg":-5000}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
	assert.Contains(t, string(body), "quantityInKg")
}

func TestPlanHandler_RejectsNegativePrice(t *testing.T) {
	app := buildPlanApp()

	resp := doJSON(t, app, http.MethodPost, "/api/plans/", `{"name":"plan"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plan := decodePlan(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/plans/"+plan.ID+"/items", `{"productCode":"BASA-FIL"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan = decodePlan(t, resp)
	itemID := plan.Items[0].ID

	resp = doJSON(t, app, http.MethodPatch,
		"/api/plans/"+plan.ID+"/items/"+itemID, `{"sellingPriceVNDPerKg":-65000}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPlanHandler_RejectsNegativeSettingsRate(t *testing.T) {
	app := buildPlanApp()

	resp := doJSON(t, app, http.MethodPost, "/api/plans/", `{"name":"plan"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	plan := decodePlan(t, resp)

	resp = doJSON(t, app, http.MethodPut,
		"/api/plans/"+plan.ID+"/settings", `{"exchangeRateImport":26356,"salesSalaryRate":-20}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "salesSalaryRate")
}

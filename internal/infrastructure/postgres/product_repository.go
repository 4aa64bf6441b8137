package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository port over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for the catalog.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `code, name_en, name_vi, brand, product_group, container_weight_kg,
		default_price_usd_per_ton, default_selling_price_vnd, default_domestic_price_vnd,
		created_at, updated_at`

// Create persists a new catalog entry.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.Code, product.NameEN, product.NameVI, product.Brand, product.Group,
		product.ContainerWeightKg, product.DefaultPriceUSDPerTon,
		product.DefaultSellingPriceVND, product.DefaultDomesticPriceVND,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByCode fetches one entry, (nil, nil) when missing.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE code = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&p.Code, &p.NameEN, &p.NameVI, &p.Brand, &p.Group, &p.ContainerWeightKg,
		&p.DefaultPriceUSDPerTon, &p.DefaultSellingPriceVND, &p.DefaultDomesticPriceVND,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List returns a catalog page ordered by code.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.Code, &p.NameEN, &p.NameVI, &p.Brand, &p.Group, &p.ContainerWeightKg,
			&p.DefaultPriceUSDPerTon, &p.DefaultSellingPriceVND, &p.DefaultDomesticPriceVND,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update rewrites the mutable columns.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name_en = $2, name_vi = $3, brand = $4, product_group = $5,
			container_weight_kg = $6, default_price_usd_per_ton = $7,
			default_selling_price_vnd = $8, default_domestic_price_vnd = $9,
			updated_at = $10
		WHERE code = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.Code, product.NameEN, product.NameVI, product.Brand, product.Group,
		product.ContainerWeightKg, product.DefaultPriceUSDPerTon,
		product.DefaultSellingPriceVND, product.DefaultDomesticPriceVND,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes the entry; deleting a missing code is a no-op.
func (r *ProductRepo) Delete(code string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

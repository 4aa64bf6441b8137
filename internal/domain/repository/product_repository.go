package repository

import "github.com/jhoicas/bizplan-api/internal/domain/entity"

// ProductRepository is the persistence port for the product catalog.
// Implementations return (nil, nil) when the product does not exist.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByCode(code string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(code string) error
}

package usecase

import (
	"time"

	"github.com/jhoicas/bizplan-api/internal/application/dto"
	"github.com/jhoicas/bizplan-api/internal/domain"
	"github.com/jhoicas/bizplan-api/internal/domain/entity"
	"github.com/jhoicas/bizplan-api/internal/domain/repository"
)

// ProductUseCase CRUD for the product catalog. Plans keep a snapshot of
// the product at add time, so catalog edits never touch existing plans.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create adds a catalog entry. Code must be unique.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Code:                    in.Code,
		NameEN:                  in.NameEN,
		NameVI:                  in.NameVI,
		Brand:                   in.Brand,
		Group:                   in.Group,
		ContainerWeightKg:       in.ContainerWeightKg,
		DefaultPriceUSDPerTon:   in.DefaultPriceUSDPerTon,
		DefaultSellingPriceVND:  in.DefaultSellingPriceVND,
		DefaultDomesticPriceVND: in.DefaultDomesticPriceVND,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// GetByCode returns one catalog entry, nil when missing.
func (uc *ProductUseCase) GetByCode(code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Update applies the non-nil fields. Code is immutable.
func (uc *ProductUseCase) Update(code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.NameEN != nil {
		product.NameEN = *in.NameEN
	}
	if in.NameVI != nil {
		product.NameVI = *in.NameVI
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Group != nil {
		product.Group = *in.Group
	}
	if in.ContainerWeightKg != nil {
		product.ContainerWeightKg = *in.ContainerWeightKg
	}
	if in.DefaultPriceUSDPerTon != nil {
		product.DefaultPriceUSDPerTon = *in.DefaultPriceUSDPerTon
	}
	if in.DefaultSellingPriceVND != nil {
		product.DefaultSellingPriceVND = *in.DefaultSellingPriceVND
	}
	if in.DefaultDomesticPriceVND != nil {
		product.DefaultDomesticPriceVND = *in.DefaultDomesticPriceVND
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// List returns a catalog page.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete removes a catalog entry.
func (uc *ProductUseCase) Delete(code string) error {
	return uc.repo.Delete(code)
}

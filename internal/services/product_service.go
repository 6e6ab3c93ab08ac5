package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/edenniyi/shopstack-be/internal/models"
)

// ProductServiceProvider defines the interface for product services.
type ProductServiceProvider interface {
	CreateProduct(ctx context.Context, userID, name, description string, price float64) (models.Product, error)
	ListProducts(ctx context.Context, userID string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id, userID, name, description string, price float64) (models.Product, error)
	DeleteProduct(ctx context.Context, id, userID string) (models.Product, error)
}

// ProductService provides business logic for products. Every operation
// re-resolves the acting user against the users table before touching a
// product, so a token for a deleted account cannot act on anything.
type ProductService struct {
	db *bun.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *bun.DB) *ProductService {
	return &ProductService{db: db}
}

// resolveOwner checks that the acting user still exists.
func (s *ProductService) resolveOwner(ctx context.Context, userID string) error {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("u.id = ?", userID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("resolving user %s: %w", userID, err)
	}
	if !exists {
		return models.ErrUserNotFound
	}
	return nil
}

func (s *ProductService) getProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := s.db.NewSelect().Model(&product).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("fetching product %s: %w", id, err)
	}
	return product, nil
}

// CreateProduct creates a new product owned by the acting user.
func (s *ProductService) CreateProduct(ctx context.Context, userID, name, description string, price float64) (models.Product, error) {
	if err := s.resolveOwner(ctx, userID); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		UserID:      userID,
	}
	if _, err := s.db.NewInsert().Model(&product).Exec(ctx); err != nil {
		return models.Product{}, fmt.Errorf("inserting product: %w", err)
	}
	return s.getProduct(ctx, product.ID)
}

// ListProducts returns all products owned by the acting user.
func (s *ProductService) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	if err := s.resolveOwner(ctx, userID); err != nil {
		return nil, err
	}

	products := make([]models.Product, 0)
	// Secondary id ordering keeps the list stable when two products share
	// a created_at timestamp.
	err := s.db.NewSelect().
		Model(&products).
		Where("p.user_id = ?", userID).
		Order("p.created_at ASC", "p.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products for user %s: %w", userID, err)
	}
	return products, nil
}

// UpdateProduct replaces a product's name, description and price. It fails
// with ErrProductNotFound when no such product exists and ErrForbidden when
// the acting user is not the owner; the row is untouched in both cases.
func (s *ProductService) UpdateProduct(ctx context.Context, id, userID, name, description string, price float64) (models.Product, error) {
	if err := s.resolveOwner(ctx, userID); err != nil {
		return models.Product{}, err
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if product.UserID != userID {
		return models.Product{}, models.ErrForbidden
	}

	product.Name = name
	product.Description = description
	product.Price = price
	if _, err = s.db.NewUpdate().
		Model(&product).
		Column("name", "description", "price").
		WherePK().
		Exec(ctx); err != nil {
		return models.Product{}, fmt.Errorf("updating product %s: %w", id, err)
	}
	return product, nil
}

// DeleteProduct removes a product owned by the acting user and returns the
// deleted row. The delete is scoped to id AND owner in a single statement,
// so a cross-owner attempt matches zero rows and reports ErrProductNotFound
// instead of removing another user's product.
func (s *ProductService) DeleteProduct(ctx context.Context, id, userID string) (models.Product, error) {
	if err := s.resolveOwner(ctx, userID); err != nil {
		return models.Product{}, err
	}

	var product models.Product
	err := s.db.NewSelect().
		Model(&product).
		Where("p.id = ?", id).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("fetching product %s: %w", id, err)
	}

	res, err := s.db.NewDelete().
		Model((*models.Product)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("deleting product %s: %w", id, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.Product{}, models.ErrProductNotFound
	}
	return product, nil
}

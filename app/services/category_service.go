package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
)

// CategoryStore is the slice of the category repository the catalog
// workflows need.
type CategoryStore interface {
	AllWithCounts(ctx context.Context) ([]models.CategoryWithCount, error)
	All(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Rename(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// categoryProductFinder lists the products of one category.
type categoryProductFinder interface {
	FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Product, error)
}

// CategoryService implements the category catalog workflows.
type CategoryService struct {
	categories CategoryStore
	products   categoryProductFinder
}

func NewCategoryService() *CategoryService {
	return &CategoryService{
		categories: repositories.NewCategoryRepository(),
		products:   repositories.NewProductRepository(),
	}
}

// All lists every category with a live product count.
func (s *CategoryService) All(ctx context.Context) ([]models.CategoryWithCount, error) {
	return s.categories.AllWithCounts(ctx)
}

// ProductsByCategory groups all products under their category names.
func (s *CategoryService) ProductsByCategory(ctx context.Context) ([]models.CategoryProducts, error) {
	categories, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CategoryProducts, 0, len(categories))
	for _, c := range categories {
		products, err := s.products.FindByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CategoryProducts{Category: c.Name, Products: products})
	}
	return out, nil
}

// Get looks up one category. A malformed id behaves like a missing one.
func (s *CategoryService) Get(ctx context.Context, id string) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, repositories.ErrNotFound
	}
	return s.categories.FindByID(ctx, oid)
}

// Create adds a new category.
func (s *CategoryService) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	category := models.Category{Name: in.Name}
	if err := s.categories.Create(ctx, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Update renames a category and returns the updated document.
func (s *CategoryService) Update(ctx context.Context, id string, in models.CategoryInput) (models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Category{}, repositories.ErrNotFound
	}

	if err := s.categories.Rename(ctx, oid, in.Name); err != nil {
		return models.Category{}, err
	}
	return s.categories.FindByID(ctx, oid)
}

// Delete removes a category. Products referencing it keep their reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotFound
	}
	return s.categories.Delete(ctx, oid)
}

package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/pkg/cache"
	"vendora/pkg/metrics"
)

// productListKey caches the full product listing; every product write
// invalidates it so reads after a write are always fresh.
const (
	productListKey = "products:all"
	productListTTL = 5 * time.Minute
)

// ProductStore is the slice of the product repository the catalog
// workflows need.
type ProductStore interface {
	All(ctx context.Context) ([]models.ProductDetail, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductDetail, error)
	Create(ctx context.Context, product *models.Product) error
	Replace(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// categoryFinder checks that an updated category reference exists.
type categoryFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
}

// ProductService implements the product catalog workflows.
type ProductService struct {
	products   ProductStore
	categories categoryFinder
}

func NewProductService() *ProductService {
	return &ProductService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
	}
}

// All lists every product with its category resolved, served from Redis
// when the listing is cached.
func (s *ProductService) All(ctx context.Context) ([]models.ProductDetail, error) {
	var cached []models.ProductDetail
	if cache.Get(productListKey, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(productListKey, products, productListTTL)
	return products, nil
}

// Get looks up one product. A malformed id behaves like a missing one.
func (s *ProductService) Get(ctx context.Context, id string) (models.ProductDetail, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ProductDetail{}, repositories.ErrNotFound
	}
	return s.products.FindByID(ctx, oid)
}

// Create adds a new product. The category reference is taken as given; only
// updates re-check it, so a stale client can still finish a create.
func (s *ProductService) Create(ctx context.Context, in models.AddProductInput) (models.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(in.Category)
	if err != nil {
		return models.Product{}, ErrInvalidCategory
	}

	product := models.Product{
		Title:          in.Title,
		Price:          *in.Price,
		DiscountPrice:  in.DiscountPrice,
		ImageURL:       in.ImageURL,
		Description:    in.Description,
		Features:       in.Features,
		Tags:           in.Tags,
		Category:       categoryID,
		WhatsappNumber: in.WhatsappNumber,
		TelegramNumber: in.TelegramNumber,
	}

	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}

	_ = cache.Del(productListKey)
	return product, nil
}

// Update applies a partial update; absent fields keep their stored value.
// A changed category reference must exist, and the merged document must keep
// any discount price below the price.
func (s *ProductService) Update(ctx context.Context, id string, in models.UpdateProductInput) (models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, repositories.ErrNotFound
	}

	detail, err := s.products.FindByID(ctx, oid)
	if err != nil {
		return models.Product{}, err
	}
	product := detail.Product

	if in.Title != "" {
		product.Title = in.Title
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.DiscountPrice != nil {
		product.DiscountPrice = in.DiscountPrice
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Features != "" {
		product.Features = in.Features
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}
	if in.Category != "" {
		categoryID, err := primitive.ObjectIDFromHex(in.Category)
		if err != nil {
			return models.Product{}, ErrInvalidCategory
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return models.Product{}, ErrInvalidCategory
			}
			return models.Product{}, err
		}
		product.Category = categoryID
	}
	if in.WhatsappNumber != "" {
		product.WhatsappNumber = in.WhatsappNumber
	}
	if in.TelegramNumber != "" {
		product.TelegramNumber = in.TelegramNumber
	}

	if product.DiscountPrice != nil && *product.DiscountPrice >= product.Price {
		return models.Product{}, ErrDiscountPrice
	}

	if err := s.products.Replace(ctx, &product); err != nil {
		return models.Product{}, err
	}

	_ = cache.Del(productListKey)
	return product, nil
}

// Delete removes a product. The stored image is kept; uploads are treated
// as immutable blobs.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotFound
	}

	if err := s.products.Delete(ctx, oid); err != nil {
		return err
	}

	_ = cache.Del(productListKey)
	return nil
}

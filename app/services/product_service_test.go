package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
)

// fakeProductStore is an in-memory ProductStore.
type fakeProductStore struct {
	byID     map[primitive.ObjectID]models.Product
	replaced *models.Product
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	s := &fakeProductStore{byID: make(map[primitive.ObjectID]models.Product)}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) All(_ context.Context) ([]models.ProductDetail, error) {
	out := []models.ProductDetail{}
	for _, p := range s.byID {
		out = append(out, models.ProductDetail{Product: p})
	}
	return out, nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.ProductDetail, error) {
	p, ok := s.byID[id]
	if !ok {
		return models.ProductDetail{}, repositories.ErrNotFound
	}
	return models.ProductDetail{Product: p}, nil
}

func (s *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.byID[product.ID] = *product
	return nil
}

func (s *fakeProductStore) Replace(_ context.Context, product *models.Product) error {
	if _, ok := s.byID[product.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.byID[product.ID] = *product
	s.replaced = product
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// fakeCategoryFinder knows a fixed set of category ids.
type fakeCategoryFinder struct {
	known map[primitive.ObjectID]models.Category
}

func (f *fakeCategoryFinder) FindByID(_ context.Context, id primitive.ObjectID) (models.Category, error) {
	c, ok := f.known[id]
	if !ok {
		return models.Category{}, repositories.ErrNotFound
	}
	return c, nil
}

func sampleProduct() models.Product {
	return models.Product{
		ID:          primitive.NewObjectID(),
		Title:       "Gold Ring",
		Price:       250,
		ImageURL:    "http://localhost:8000/uploads/products/1-ring.jpg",
		Description: "A gold ring",
		Features:    "22 karat",
		Tags:        []string{"gold", "ring"},
		Category:    primitive.NewObjectID(),
	}
}

func TestCreateProductFromInput(t *testing.T) {
	store := newFakeProductStore()
	svc := &ProductService{products: store, categories: &fakeCategoryFinder{}}

	price := 99.5
	discount := 79.0
	categoryID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), models.AddProductInput{
		Title:       "Silver Chain",
		Price:       &price,
		DiscountPrice: &discount,
		ImageURL:    "http://localhost:8000/uploads/products/2-chain.jpg",
		Description: "A silver chain",
		Features:    "925 sterling",
		Tags:        []string{"silver"},
		Category:    categoryID.Hex(),
	})
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	assert.Equal(t, 99.5, created.Price)
	require.NotNil(t, created.DiscountPrice)
	assert.Equal(t, 79.0, *created.DiscountPrice)
	assert.Equal(t, categoryID, created.Category)

	_, ok := store.byID[created.ID]
	assert.True(t, ok, "product was not stored")
}

func TestUpdateProductMergesPartialInput(t *testing.T) {
	existing := sampleProduct()
	store := newFakeProductStore(existing)
	svc := &ProductService{products: store, categories: &fakeCategoryFinder{}}

	updated, err := svc.Update(context.Background(), existing.ID.Hex(), models.UpdateProductInput{
		Title: "Gold Ring Deluxe",
	})
	require.NoError(t, err)

	assert.Equal(t, "Gold Ring Deluxe", updated.Title)
	assert.Equal(t, existing.Price, updated.Price)
	assert.Equal(t, existing.ImageURL, updated.ImageURL)
	assert.Equal(t, existing.Tags, updated.Tags)
	assert.Equal(t, existing.Category, updated.Category)
	require.NotNil(t, store.replaced)
}

func TestUpdateProductRejectsDiscountAtOrAbovePrice(t *testing.T) {
	existing := sampleProduct()
	store := newFakeProductStore(existing)
	svc := &ProductService{products: store, categories: &fakeCategoryFinder{}}

	discount := existing.Price
	_, err := svc.Update(context.Background(), existing.ID.Hex(), models.UpdateProductInput{
		DiscountPrice: &discount,
	})
	assert.ErrorIs(t, err, ErrDiscountPrice)

	// Lowering the price below an existing discount is rejected the same way.
	withDiscount := sampleProduct()
	d := 200.0
	withDiscount.DiscountPrice = &d
	store = newFakeProductStore(withDiscount)
	svc = &ProductService{products: store, categories: &fakeCategoryFinder{}}

	low := 150.0
	_, err = svc.Update(context.Background(), withDiscount.ID.Hex(), models.UpdateProductInput{
		Price: &low,
	})
	assert.ErrorIs(t, err, ErrDiscountPrice)
}

func TestUpdateProductRejectsUnknownCategory(t *testing.T) {
	existing := sampleProduct()
	store := newFakeProductStore(existing)
	svc := &ProductService{products: store, categories: &fakeCategoryFinder{}}

	_, err := svc.Update(context.Background(), existing.ID.Hex(), models.UpdateProductInput{
		Category: primitive.NewObjectID().Hex(),
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestUpdateProductAcceptsKnownCategory(t *testing.T) {
	existing := sampleProduct()
	newCategory := models.Category{ID: primitive.NewObjectID(), Name: "Chains"}
	store := newFakeProductStore(existing)
	svc := &ProductService{
		products:   store,
		categories: &fakeCategoryFinder{known: map[primitive.ObjectID]models.Category{newCategory.ID: newCategory}},
	}

	updated, err := svc.Update(context.Background(), existing.ID.Hex(), models.UpdateProductInput{
		Category: newCategory.ID.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, newCategory.ID, updated.Category)
}

func TestGetProductMalformedID(t *testing.T) {
	svc := &ProductService{products: newFakeProductStore(), categories: &fakeCategoryFinder{}}

	_, err := svc.Get(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteProductMissing(t *testing.T) {
	svc := &ProductService{products: newFakeProductStore(), categories: &fakeCategoryFinder{}}

	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/app/services"
	"vendora/pkg/bind"
	"vendora/pkg/logger"
	"vendora/pkg/response"
	"vendora/pkg/storage"
	"vendora/pkg/validate"
)

// ProductController handles the product catalog endpoints. Create and Update
// accept multipart forms because the product image travels with the fields.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// All handles GET /api/product.
func (c *ProductController) All(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "All Product fetch successfully", products)
}

// Create handles POST /api/product. The image is required and arrives in the
// multipart field "imageUrl".
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	key, stored := c.storeImage(w, r, true)
	if !stored {
		return
	}

	in := models.AddProductInput{
		Title:          r.FormValue("title"),
		ImageURL:       storage.URL(key),
		Description:    r.FormValue("description"),
		Features:       r.FormValue("features"),
		Category:       r.FormValue("category"),
		WhatsappNumber: r.FormValue("whatsappNumber"),
		TelegramNumber: r.FormValue("telegramNumber"),
	}

	var ok bool
	if in.Price, ok = floatField(w, r, "price"); !ok {
		return
	}
	if in.DiscountPrice, ok = floatField(w, r, "discountPrice"); !ok {
		return
	}
	if in.Tags, ok = tagsField(w, r); !ok {
		return
	}

	if errs := validate.Struct(&in); len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	product, err := c.products.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) {
			response.BadRequest(w, "Invalid category.")
			return
		}
		logger.WithCtx(r.Context()).Error("create product failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Product has successfully added", product)
}

// Update handles PUT /api/product/{productId}. All fields are optional;
// absent ones keep their stored value.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	if err := bind.Multipart(r); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	in := models.UpdateProductInput{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Features:       r.FormValue("features"),
		Category:       r.FormValue("category"),
		WhatsappNumber: r.FormValue("whatsappNumber"),
		TelegramNumber: r.FormValue("telegramNumber"),
	}

	if key, stored := c.storeImage(w, r, false); key != "" {
		in.ImageURL = storage.URL(key)
	} else if !stored {
		return
	}

	var ok bool
	if in.Price, ok = floatField(w, r, "price"); !ok {
		return
	}
	if in.DiscountPrice, ok = floatField(w, r, "discountPrice"); !ok {
		return
	}
	if _, present := r.Form["tags"]; present {
		if in.Tags, ok = tagsField(w, r); !ok {
			return
		}
	}

	if errs := validate.Struct(&in); len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	product, err := c.products.Update(r.Context(), chi.URLParam(r, "productId"), in)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			response.NotFound(w, "Product not found")
		case errors.Is(err, services.ErrInvalidCategory):
			response.BadRequest(w, "Invalid category.")
		case errors.Is(err, services.ErrDiscountPrice):
			response.BadRequest(w, "Discount price must be less than the original price.")
		default:
			logger.WithCtx(r.Context()).Error("update product failed", "error", err)
			response.Internal(w)
		}
		return
	}

	response.Success(w, "Product has been updated successfully", product)
}

// Delete handles DELETE /api/product/{productId}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), chi.URLParam(r, "productId")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("delete product failed", "error", err)
		response.Internal(w)
		return
	}

	response.OK(w, "Product has been successfully deleted")
}

// Get handles GET /api/product/{productId}.
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		logger.WithCtx(r.Context()).Error("get product failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Product fetched successfully", product)
}

// storeImage saves the uploaded "imageUrl" file under products/ and returns
// the storage key. With required set, a missing file writes the error
// response and reports stored=false. Without it, a missing file is fine and
// returns an empty key with stored=true.
func (c *ProductController) storeImage(w http.ResponseWriter, r *http.Request, required bool) (key string, stored bool) {
	file, header, err := r.FormFile("imageUrl")
	if err != nil {
		if !required && errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		response.Error(w, http.StatusNotFound, "Product must have at least one image")
		return "", false
	}
	defer file.Close()

	key = fmt.Sprintf("products/%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	if err := storage.PutStream(key, file); err != nil {
		logger.WithCtx(r.Context()).Error("store product image failed", "error", err)
		response.Internal(w)
		return "", false
	}
	return key, true
}

// floatField parses an optional numeric form field. Returns nil when the
// field is absent or empty; writes a 400 and reports ok=false when the value
// is not a number.
func floatField(w http.ResponseWriter, r *http.Request, name string) (*float64, bool) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.BadRequest(w, fmt.Sprintf("The %s field must be a number.", name))
		return nil, false
	}
	return &f, true
}

// tagsField reads tags either as repeated form values or as one
// comma-separated value. A missing field is rejected the same way a
// non-array body would be.
func tagsField(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	values, present := r.Form["tags"]
	if !present {
		response.BadRequest(w, "Tags must be an array of strings")
		return nil, false
	}

	if len(values) == 1 {
		values = strings.Split(values[0], ",")
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		tags = append(tags, strings.TrimSpace(v))
	}
	return tags, true
}

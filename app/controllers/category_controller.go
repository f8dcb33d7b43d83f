package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/app/services"
	"vendora/pkg/bind"
	"vendora/pkg/logger"
	"vendora/pkg/response"
	"vendora/pkg/validate"
)

// CategoryController handles the category catalog endpoints.
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// All handles GET /api/category and includes a live product count per
// category.
func (c *CategoryController) All(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list categories failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "All Categories fetch successfully", categories)
}

// ProductsByCategory handles GET /api/category/products-by-category and
// returns a bare array grouping products under their category names.
func (c *CategoryController) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	groups, err := c.categories.ProductsByCategory(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("products by category failed", "error", err)
		response.JSON(w, http.StatusInternalServerError, map[string]string{"message": err.Error()})
		return
	}

	response.JSON(w, http.StatusOK, groups)
}

// Create handles POST /api/category.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	category, err := c.categories.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			response.BadRequest(w, "Category already exists")
			return
		}
		logger.WithCtx(r.Context()).Error("create category failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Category has successfully added", category)
}

// Update handles PUT /api/category/{categoryId}. The category is looked up
// before the body is validated, so a missing id answers 404 even when the
// body is bad.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "categoryId")
	if _, err := c.categories.Get(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update category failed", "error", err)
		response.Internal(w)
		return
	}

	var in models.CategoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(errs) > 0 {
		response.BadRequest(w, validate.First(errs))
		return
	}

	category, err := c.categories.Update(r.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			response.NotFound(w, "Category not found")
		case errors.Is(err, repositories.ErrDuplicate):
			response.BadRequest(w, "Category already exists")
		default:
			logger.WithCtx(r.Context()).Error("update category failed", "error", err)
			response.Internal(w)
		}
		return
	}

	response.Success(w, "Category has been updated successfully", category)
}

// Delete handles DELETE /api/category/{categoryId}. Products referencing
// the category are left untouched.
func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.categories.Delete(r.Context(), chi.URLParam(r, "categoryId")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("delete category failed", "error", err)
		response.Internal(w)
		return
	}

	response.OK(w, "Category has been successfully deleted")
}

// Get handles GET /api/category/{categoryId}.
func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.Get(r.Context(), chi.URLParam(r, "categoryId"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		logger.WithCtx(r.Context()).Error("get category failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, "Category fetched successfully", category)
}

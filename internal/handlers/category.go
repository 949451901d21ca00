package handlers

import (
	"log"
	"net/http"

	"github.com/baco-dev/baco/internal/store"
	"github.com/gin-gonic/gin"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SubcategoryResponse struct {
	ID         uint   `json:"id"`
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
}

type CategoryHandler struct {
	store store.Store
}

func NewCategoryHandler(s store.Store) *CategoryHandler {
	return &CategoryHandler{store: s}
}

func (h *CategoryHandler) List(ctx *gin.Context) {
	categories, err := h.store.ListCategories()

	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, CategoryResponse{ID: c.ID, Name: c.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *CategoryHandler) Subcategories(ctx *gin.Context) {
	categoryID, err := idParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	subcategories, err := h.store.ListSubcategories(categoryID)

	if err != nil {
		log.Printf("Failed to list subcategories: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	response := make([]SubcategoryResponse, 0, len(subcategories))
	for _, sc := range subcategories {
		response = append(response, SubcategoryResponse{ID: sc.ID, CategoryID: sc.CategoryID, Name: sc.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

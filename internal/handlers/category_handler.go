package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/audit"
	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/middleware"
	"github.com/menuvi/menuvi/internal/models"
)

type CategoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCategoryHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CategoryHandler {
	return &CategoryHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	MenuType  string `json:"menu_type"`
	SortOrder int    `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty"`
	MenuType  *string `json:"menu_type,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

// --------- Handlers ---------

// Dashboard lists the tenant's categories with item counts, every item
// included regardless of availability.
func (h *CategoryHandler) Dashboard(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	var categories []models.Category
	if err := h.db.
		Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {

		httperr.Internal(c, "failed_to_list_categories", "Could not load the dashboard.")
		return
	}

	type categoryRow struct {
		models.Category
		ItemCount int64 `json:"item_count"`
	}
	rows := make([]categoryRow, 0, len(categories))
	for _, cat := range categories {
		var n int64
		h.db.Model(&models.MenuItem{}).Where("category_id = ?", cat.ID).Count(&n)
		rows = append(rows, categoryRow{Category: cat, ItemCount: n})
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant,
		"categories": rows,
	})
}

func (h *CategoryHandler) List(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	var categories []models.Category
	if err := h.db.
		Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {

		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	menuType := req.MenuType
	if menuType == "" {
		menuType = models.MenuTypeDining
	}
	if !models.ValidMenuType(menuType) {
		httperr.BadRequest(c, "invalid_menu_type", "Menu type must be dining or beverages.")
		return
	}

	var count int64
	h.db.Model(&models.Category{}).
		Where("restaurant_id = ? AND name = ?", restaurant.ID, name).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "category_name_taken", "A category with that name already exists.")
		return
	}

	category := models.Category{
		RestaurantID: restaurant.ID,
		Name:         name,
		MenuType:     menuType,
		SortOrder:    req.SortOrder,
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create the category.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "create", "category", category.ID, gin.H{"name": category.Name})
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	category, ok := findTenantCategory(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_request", "Name is required.")
			return
		}
		if name != category.Name {
			var count int64
			h.db.Model(&models.Category{}).
				Where("restaurant_id = ? AND name = ?", restaurant.ID, name).
				Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "category_name_taken", "A category with that name already exists.")
				return
			}
			category.Name = name
		}
	}
	if req.MenuType != nil {
		if !models.ValidMenuType(*req.MenuType) {
			httperr.BadRequest(c, "invalid_menu_type", "Menu type must be dining or beverages.")
			return
		}
		category.MenuType = *req.MenuType
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := h.db.Save(category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", "Could not update the category.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "update", "category", category.ID, gin.H{"name": category.Name})
	c.JSON(http.StatusOK, category)
}

// Delete removes a category and all of its items in one transaction.
func (h *CategoryHandler) Delete(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	category, ok := findTenantCategory(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_category", "Could not delete the category.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "delete", "category", category.ID, gin.H{"name": category.Name})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------- helpers ---------

// findTenantCategory loads a category scoped to the tenant; ids belonging
// to another restaurant are indistinguishable from missing ones.
func findTenantCategory(db *gorm.DB, restaurantID uint, id string) (*models.Category, bool) {
	var category models.Category
	if err := db.
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&category).Error; err != nil {

		return nil, false
	}
	return &category, true
}

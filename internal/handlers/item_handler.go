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
	"github.com/menuvi/menuvi/internal/price"
)

type ItemHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewItemHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ItemHandler {
	return &ItemHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

// Price arrives as the free-form string typed into the form ("$22.90",
// "1,234.50", ""); unparsable input means "no price shown".
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price"`
	SortOrder   int    `json:"sort_order"`
	Available   *bool  `json:"available,omitempty"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *string `json:"price,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	CategoryID  *uint   `json:"category_id,omitempty"`
}

// --------- Handlers ---------

// List shows every item of a category, available or not. Admins see the
// full picture; only the public side filters by availability.
func (h *ItemHandler) List(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	category, ok := findTenantCategory(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var items []models.MenuItem
	if err := h.db.
		Where("category_id = ?", category.ID).
		Order("sort_order ASC").
		Find(&items).Error; err != nil {

		httperr.Internal(c, "failed_to_list_items", "Could not list items.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"items":    items,
	})
}

func (h *ItemHandler) Create(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	category, ok := findTenantCategory(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "category_not_found", "Category not found.")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	item := models.MenuItem{
		CategoryID:  category.ID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		PriceCents:  price.ParseCents(req.Price),
		SortOrder:   req.SortOrder,
		Available:   available,
	}

	if err := h.db.Create(&item).Error; err != nil {
		httperr.Internal(c, "failed_to_create_item", "Could not create the item.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "create", "menu_item", item.ID, gin.H{"name": item.Name})
	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	item, ok := findTenantItem(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	var req UpdateItemRequest
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
		item.Name = name
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		item.PriceCents = price.ParseCents(*req.Price)
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if req.CategoryID != nil && *req.CategoryID != item.CategoryID {
		// Items may move between categories, but never across tenants.
		var target models.Category
		if err := h.db.
			Where("id = ? AND restaurant_id = ?", *req.CategoryID, restaurant.ID).
			First(&target).Error; err != nil {

			httperr.NotFound(c, "category_not_found", "Category not found.")
			return
		}
		item.CategoryID = target.ID
	}

	if err := h.db.Save(item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update the item.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "update", "menu_item", item.ID, gin.H{"name": item.Name})
	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	item, ok := findTenantItem(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	if err := h.db.Delete(item).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_item", "Could not delete the item.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "delete", "menu_item", item.ID, gin.H{"name": item.Name})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Toggle flips an item's availability.
func (h *ItemHandler) Toggle(c *gin.Context) {
	restaurant := middleware.Tenant(c)

	item, ok := findTenantItem(h.db, restaurant.ID, c.Param("id"))
	if !ok {
		httperr.NotFound(c, "item_not_found", "Item not found.")
		return
	}

	item.Available = !item.Available
	if err := h.db.Save(item).Error; err != nil {
		httperr.Internal(c, "failed_to_update_item", "Could not update the item.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "toggle", "menu_item", item.ID, gin.H{"available": item.Available})
	c.JSON(http.StatusOK, item)
}

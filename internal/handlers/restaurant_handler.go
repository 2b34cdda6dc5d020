package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/audit"
	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/models"
	"github.com/menuvi/menuvi/internal/slug"
)

type RestaurantHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewRestaurantHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *RestaurantHandler {
	return &RestaurantHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateRestaurantRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug"`
	Tagline       string `json:"tagline"`
	BrandColor    string `json:"brand_color"`
	BrandColorDim string `json:"brand_color_dim"`
}

type UpdateRestaurantRequest struct {
	Name          *string `json:"name,omitempty"`
	Slug          *string `json:"slug,omitempty"`
	Tagline       *string `json:"tagline,omitempty"`
	BrandColor    *string `json:"brand_color,omitempty"`
	BrandColorDim *string `json:"brand_color_dim,omitempty"`
}

// --------- Handlers ---------

// Dashboard is the superadmin console overview: every restaurant and
// every user.
func (h *RestaurantHandler) Dashboard(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Order("name ASC").Find(&restaurants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_restaurants", "Could not load the dashboard.")
		return
	}

	var users []models.User
	if err := h.db.Order("email ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not load the dashboard.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"users":       users,
	})
}

func (h *RestaurantHandler) List(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := h.db.Order("name ASC").Find(&restaurants).Error; err != nil {
		httperr.Internal(c, "failed_to_list_restaurants", "Could not list restaurants.")
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	s := strings.ToLower(strings.TrimSpace(req.Slug))
	if s == "" {
		s = slug.Make(name)
	}
	if s == "" {
		httperr.BadRequest(c, "invalid_slug", "A slug could not be derived from that name.")
		return
	}

	if err := h.validateSlug(s, 0); err != nil {
		if httperr.IsBusiness(err, "slug_taken") {
			httperr.BadRequest(c, "slug_taken", "That slug is already taken.")
			return
		}
		httperr.Internal(c, "failed_to_create_restaurant", "Could not create the restaurant.")
		return
	}

	restaurant := models.Restaurant{
		Name:          name,
		Slug:          s,
		Tagline:       strings.TrimSpace(req.Tagline),
		BrandColor:    defaultColor(req.BrandColor, "#c9a84c"),
		BrandColorDim: defaultColor(req.BrandColorDim, "#a68939"),
	}

	if err := h.db.Create(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_create_restaurant", "Could not create the restaurant.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "create", "restaurant", restaurant.ID, gin.H{"slug": restaurant.Slug})
	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
		return
	}

	var req UpdateRestaurantRequest
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
		restaurant.Name = name
	}
	if req.Slug != nil {
		s := strings.ToLower(strings.TrimSpace(*req.Slug))
		if s == "" {
			s = slug.Make(restaurant.Name)
		}
		if s != restaurant.Slug {
			if err := h.validateSlug(s, restaurant.ID); err != nil {
				if httperr.IsBusiness(err, "slug_taken") {
					httperr.BadRequest(c, "slug_taken", "That slug is already taken.")
					return
				}
				httperr.Internal(c, "failed_to_update_restaurant", "Could not update the restaurant.")
				return
			}
			restaurant.Slug = s
		}
	}
	if req.Tagline != nil {
		restaurant.Tagline = strings.TrimSpace(*req.Tagline)
	}
	if req.BrandColor != nil {
		restaurant.BrandColor = strings.TrimSpace(*req.BrandColor)
	}
	if req.BrandColorDim != nil {
		restaurant.BrandColorDim = strings.TrimSpace(*req.BrandColorDim)
	}

	if err := h.db.Save(&restaurant).Error; err != nil {
		httperr.Internal(c, "failed_to_update_restaurant", "Could not update the restaurant.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "update", "restaurant", restaurant.ID, gin.H{"slug": restaurant.Slug})
	c.JSON(http.StatusOK, restaurant)
}

// Delete removes the restaurant with all of its categories and items in a
// single transaction; its users are kept but detached.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.Category{}).
			Where("restaurant_id = ?", restaurant.ID).
			Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}

		if len(categoryIDs) > 0 {
			if err := tx.Where("category_id IN ?", categoryIDs).Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Category{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.User{}).
			Where("restaurant_id = ?", restaurant.ID).
			Update("restaurant_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_restaurant", "Could not delete the restaurant.")
		return
	}

	dispatchAudit(c, h.audit, restaurant.ID, "delete", "restaurant", restaurant.ID, gin.H{"slug": restaurant.Slug})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------- helpers ---------

// validateSlug enforces write-time slug uniqueness across restaurants.
func (h *RestaurantHandler) validateSlug(s string, excludeID uint) error {
	var count int64
	q := h.db.Model(&models.Restaurant{}).Where("slug = ?", s)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("slug_taken")
	}
	return nil
}

func defaultColor(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Role         string `json:"role"`
	RestaurantID *uint  `json:"restaurant_id"`
}

type UpdateUserRequest struct {
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	Role         *string `json:"role,omitempty"`
	RestaurantID *uint   `json:"restaurant_id,omitempty"`
	// ClearRestaurant detaches the user; a nil RestaurantID alone cannot
	// distinguish "leave as is" from "unset".
	ClearRestaurant bool `json:"clear_restaurant,omitempty"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("email ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := req.Role
	if role == "" {
		role = models.RoleOwner
	}
	if role != models.RoleOwner && role != models.RoleSuperadmin {
		httperr.BadRequest(c, "invalid_role", "Role must be owner or superadmin.")
		return
	}

	// Only superadmins may float free of a restaurant.
	if role != models.RoleSuperadmin && req.RestaurantID == nil {
		httperr.BadRequest(c, "restaurant_required", "Owner accounts must belong to a restaurant.")
		return
	}
	if req.RestaurantID != nil && !h.restaurantExists(*req.RestaurantID) {
		httperr.BadRequest(c, "restaurant_not_found", "That restaurant does not exist.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_taken", "That email is already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create the user.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		RestaurantID: req.RestaurantID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create the user.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			httperr.BadRequest(c, "invalid_request", "Email is required.")
			return
		}
		if email != user.Email {
			var count int64
			h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
			if count > 0 {
				httperr.BadRequest(c, "email_taken", "That email is already registered.")
				return
			}
			user.Email = email
		}
	}
	if req.Role != nil {
		if *req.Role != models.RoleOwner && *req.Role != models.RoleSuperadmin {
			httperr.BadRequest(c, "invalid_role", "Role must be owner or superadmin.")
			return
		}
		user.Role = *req.Role
	}
	if req.ClearRestaurant {
		user.RestaurantID = nil
	} else if req.RestaurantID != nil {
		if !h.restaurantExists(*req.RestaurantID) {
			httperr.BadRequest(c, "restaurant_not_found", "That restaurant does not exist.")
			return
		}
		user.RestaurantID = req.RestaurantID
	}

	if user.Role != models.RoleSuperadmin && user.RestaurantID == nil {
		httperr.BadRequest(c, "restaurant_required", "Owner accounts must belong to a restaurant.")
		return
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not update the user.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update the user.")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete the user.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --------- helpers ---------

func (h *UserHandler) restaurantExists(id uint) bool {
	var count int64
	h.db.Model(&models.Restaurant{}).Where("id = ?", id).Count(&count)
	return count > 0
}

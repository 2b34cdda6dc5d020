package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/httperr"
	"github.com/menuvi/menuvi/internal/models"
)

const ContextRestaurant = "restaurant"

// TenantMiddleware resolves the :slug path segment to a restaurant and
// stores it in the context. Unknown slugs answer 404.
func TenantMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var restaurant models.Restaurant
		if err := db.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
			httperr.NotFound(c, "restaurant_not_found", "Restaurant not found.")
			c.Abort()
			return
		}

		c.Set(ContextRestaurant, &restaurant)
		c.Next()
	}
}

// Tenant returns the restaurant resolved by TenantMiddleware.
func Tenant(c *gin.Context) *models.Restaurant {
	v, _ := c.Get(ContextRestaurant)
	return v.(*models.Restaurant)
}

// RequireTenantAccess lets a request through only when the authenticated
// principal is a superadmin or belongs to the resolved tenant. Runs after
// AuthMiddleware and TenantMiddleware.
func RequireTenantAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role == models.RoleSuperadmin {
			c.Next()
			return
		}

		tenant := Tenant(c)
		ridVal, _ := c.Get(ContextRestaurantID)
		rid, _ := ridVal.(*uint)
		if rid == nil || *rid != tenant.ID {
			httperr.Forbidden(c, "forbidden", "You do not have access to this restaurant.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSuperadmin gates the superadmin console. Runs after AuthMiddleware.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleSuperadmin {
			httperr.Forbidden(c, "forbidden", "Superadmin access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

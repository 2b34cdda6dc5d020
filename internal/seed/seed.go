// Package seed fills an empty database with a demo tenant and menu.
package seed

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/models"
)

type seedItem struct {
	Name        string
	Description string
	PriceCents  *int64
}

type seedCategory struct {
	Name     string
	MenuType string
	Items    []seedItem
}

func cents(v int64) *int64 { return &v }

// demoMenu is a cut of the Jewel of India menu.
var demoMenu = []seedCategory{
	{
		Name:     "Entrée",
		MenuType: models.MenuTypeDining,
		Items: []seedItem{
			{"Vegetable Samosas (2 pcs)", "Savoury pastry triangles filled with spicy potatoes and green peas", cents(1290)},
			{"Onion Bhaji (4 pcs)", "Spicy onion fritters served with mint and tamarind chutneys", cents(1290)},
			{"Chicken Tikka (4 pcs)", "Boneless tandoori chicken", cents(1590)},
			{"Tandoori Chicken", "Half spring chicken cooked in tandoor", cents(1690)},
		},
	},
	{
		Name:     "Chicken Dishes",
		MenuType: models.MenuTypeDining,
		Items: []seedItem{
			{"Butter Chicken", "Boneless tandoori chicken in a tomato & butter sauce", cents(2290)},
			{"Saag Chicken", "Chicken with spinach", cents(2290)},
			{"Chicken Vindaloo", "Ever popular with Australians - very hot!", cents(2290)},
			{"Chicken Tikka Masala", "Shredded chicken tikka tossed with capsicum, onions & spices", cents(2290)},
		},
	},
	{
		Name:     "Vegetarian",
		MenuType: models.MenuTypeDining,
		Items: []seedItem{
			{"Palak Paneer", "Home made cottage cheese curried with spinach & spices", cents(2090)},
			{"Dal Makhni (Black Lentils)", "Whole black lentils cooked to perfection with tomatoes, garlic, butter and cream", cents(2090)},
			{"Aloo Gobhi", "Cauliflower and potatoes sautéed with mild spices", cents(2090)},
		},
	},
	{
		Name:     "Tandoori Breads",
		MenuType: models.MenuTypeDining,
		Items: []seedItem{
			{"Plain Naan", "Leavened plain flour bread, served smeared with butter", cents(400)},
			{"Garlic Naan", "Garlic flavoured naan", cents(450)},
			{"Cheese Kulcha", "Bread stuffed with cheese", cents(500)},
		},
	},
	{
		Name:     "Desserts",
		MenuType: models.MenuTypeDining,
		Items: []seedItem{
			{"Gulab Jamun", "Reduced milk dumplings soaked in cardamom flavoured sugar syrup", cents(1000)},
		},
	},
	{
		Name:     "Drinks",
		MenuType: models.MenuTypeBeverages,
		Items: []seedItem{
			{"Mango Lassi", "Sweet yoghurt drink blended with mango", cents(650)},
			{"Masala Chai", "Spiced milk tea", cents(450)},
			{"Sparkling Water", "", nil},
		},
	},
}

// Demo inserts the demo restaurant, an owner account and the menu above.
// It is idempotent: categories and items already present are left alone.
func Demo(db *gorm.DB, drop bool) error {
	if drop {
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
			return tx.Where("1 = 1").Delete(&models.Category{}).Error
		}); err != nil {
			return fmt.Errorf("drop menu data: %w", err)
		}
	}

	restaurant := models.Restaurant{
		Name:    "Jewel of India",
		Slug:    "jewel-of-india",
		Tagline: "Fine Indian dining",
	}
	var existing models.Restaurant
	err := db.Where("slug = ?", restaurant.Slug).First(&existing).Error
	switch {
	case err == nil:
		restaurant = existing
	case err == gorm.ErrRecordNotFound:
		if err := db.Create(&restaurant).Error; err != nil {
			return fmt.Errorf("create restaurant: %w", err)
		}
	default:
		return err
	}

	if err := ensureOwner(db, restaurant.ID); err != nil {
		return err
	}

	for catOrder, sc := range demoMenu {
		var cat models.Category
		err := db.Where("restaurant_id = ? AND name = ?", restaurant.ID, sc.Name).First(&cat).Error
		if err == gorm.ErrRecordNotFound {
			cat = models.Category{
				RestaurantID: restaurant.ID,
				Name:         sc.Name,
				MenuType:     sc.MenuType,
				SortOrder:    catOrder,
			}
			if err := db.Create(&cat).Error; err != nil {
				return fmt.Errorf("create category %q: %w", sc.Name, err)
			}
		} else if err != nil {
			return err
		}

		for itemOrder, si := range sc.Items {
			var count int64
			db.Model(&models.MenuItem{}).
				Where("category_id = ? AND name = ?", cat.ID, si.Name).
				Count(&count)
			if count > 0 {
				continue
			}
			item := models.MenuItem{
				CategoryID:  cat.ID,
				Name:        si.Name,
				Description: si.Description,
				PriceCents:  si.PriceCents,
				Available:   true,
				SortOrder:   itemOrder,
			}
			if err := db.Create(&item).Error; err != nil {
				return fmt.Errorf("create item %q: %w", si.Name, err)
			}
		}
	}

	return nil
}

func ensureOwner(db *gorm.DB, restaurantID uint) error {
	const ownerEmail = "owner@jewel-of-india.example"

	var count int64
	db.Model(&models.User{}).Where("email = ?", ownerEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := models.User{
		Email:        ownerEmail,
		PasswordHash: string(hashed),
		Role:         models.RoleOwner,
		RestaurantID: &restaurantID,
	}
	return db.Create(&owner).Error
}

// Superadmin creates (or leaves untouched) a superadmin account.
func Superadmin(db *gorm.DB, email, password string) error {
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return fmt.Errorf("user %s already exists", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleSuperadmin,
	}
	return db.Create(&user).Error
}

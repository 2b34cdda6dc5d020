package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menuvi/menuvi/internal/models"
)

func TestAdminRequiresAuth(t *testing.T) {
	r, db := setupTest(t)
	createRestaurant(t, db, "Jewel of India", "jewel")

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/jewel", nil, withJSONAccept())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminBrowserRedirectsToLoginWithNext(t *testing.T) {
	r, db := setupTest(t)
	createRestaurant(t, db, "Jewel of India", "jewel")

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/jewel/categories", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	loc := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/jewel/admin/login?next="), "got %q", loc)
	assert.Contains(t, loc, "%2Fapi%2Fadmin%2Fjewel%2Fcategories")
}

func TestOwnerCannotTouchAnotherTenant(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	createRestaurant(t, db, "Golden Spoon", "spoon")
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/spoon", nil, withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSuperadminCanTouchAnyTenant(t *testing.T) {
	r, db := setupTest(t)
	createRestaurant(t, db, "Jewel of India", "jewel")
	super := createUser(t, db, "root@menuvi.test", "secret", models.RoleSuperadmin, nil)

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/jewel", nil, withBearer(tokenFor(t, super)))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnerCannotFetchAnotherTenantsItem(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	spoon := createRestaurant(t, db, "Golden Spoon", "spoon")
	spoonCat := createCategory(t, db, spoon.ID, "Mains", "dining", 0)
	secret := createItem(t, db, spoonCat.ID, "Secret Special", cents(9900), true)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPatch,
		fmt.Sprintf("/api/admin/jewel/items/%d", secret.ID),
		map[string]any{"name": "Hijacked"},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Secret Special")

	var untouched models.MenuItem
	assert.NoError(t, db.First(&untouched, secret.ID).Error)
	assert.Equal(t, "Secret Special", untouched.Name)
}

func TestCreateCategoryRejectsDuplicateName(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPost, "/api/admin/jewel/categories",
		map[string]any{"name": "Mains"},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "category_name_taken")
}

func TestSameCategoryNameAllowedAcrossTenants(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	spoon := createRestaurant(t, db, "Golden Spoon", "spoon")
	createCategory(t, db, spoon.ID, "Mains", "dining", 0)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPost, "/api/admin/jewel/categories",
		map[string]any{"name": "Mains"},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteCategoryCascadesItems(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	createItem(t, db, cat.ID, "Butter Chicken", cents(2290), true)
	createItem(t, db, cat.ID, "Saag Chicken", cents(2290), true)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodDelete,
		fmt.Sprintf("/api/admin/jewel/categories/%d", cat.ID), nil,
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusOK, w.Code)

	var itemCount int64
	db.Model(&models.MenuItem{}).Where("category_id = ?", cat.ID).Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestAdminListShowsUnavailableItems(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	createItem(t, db, cat.ID, "Butter Chicken", cents(2290), true)
	createItem(t, db, cat.ID, "Off Menu Special", cents(9900), false)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodGet,
		fmt.Sprintf("/api/admin/jewel/categories/%d/items", cat.ID), nil,
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Len(t, body["items"].([]any), 2)
}

func TestCreateItemParsesPriceString(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPost,
		fmt.Sprintf("/api/admin/jewel/categories/%d/items", cat.ID),
		map[string]any{"name": "Butter Chicken", "price": "$22.90"},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(2290), body["price_cents"])
}

func TestCreateItemWithBlankPriceHasNoPrice(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPost,
		fmt.Sprintf("/api/admin/jewel/categories/%d/items", cat.ID),
		map[string]any{"name": "Market Fish", "price": ""},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Nil(t, body["price_cents"])
}

func TestCreateUnavailableItemStaysUnavailable(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPost,
		fmt.Sprintf("/api/admin/jewel/categories/%d/items", cat.ID),
		map[string]any{"name": "Seasonal Special", "price": "18.00", "available": false},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, false, body["available"])

	// The stored row must carry false too, not just the response echo.
	var got models.MenuItem
	if err := db.First(&got, uint(body["id"].(float64))).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	assert.False(t, got.Available)
}

func TestToggleTwiceRestoresAvailability(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	cat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	item := createItem(t, db, cat.ID, "Butter Chicken", cents(2290), true)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	path := fmt.Sprintf("/api/admin/jewel/items/%d/toggle", item.ID)
	token := tokenFor(t, owner)

	w := c.do(t, http.MethodPost, path, nil, withBearer(token))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeJSON(t, w)["available"])

	w = c.do(t, http.MethodPost, path, nil, withBearer(token))
	assert.Equal(t, true, decodeJSON(t, w)["available"])
}

func TestMoveItemToAnotherTenantsCategoryRejected(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	spoon := createRestaurant(t, db, "Golden Spoon", "spoon")
	jewelCat := createCategory(t, db, jewel.ID, "Mains", "dining", 0)
	spoonCat := createCategory(t, db, spoon.ID, "Mains", "dining", 0)
	item := createItem(t, db, jewelCat.ID, "Butter Chicken", cents(2290), true)
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodPatch,
		fmt.Sprintf("/api/admin/jewel/items/%d", item.ID),
		map[string]any{"category_id": spoonCat.ID},
		withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQRDownloadIsPNG(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/jewel/qr.png", nil, withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "jewel-menu-qr.png")
	// PNG magic bytes.
	assert.True(t, len(w.Body.Bytes()) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}

func TestQRShowEncodesPublicURL(t *testing.T) {
	r, db := setupTest(t)
	jewel := createRestaurant(t, db, "Jewel of India", "jewel")
	owner := createUser(t, db, "owner@jewel.test", "secret", models.RoleOwner, &jewel.ID)

	c := newClient(r)
	w := c.do(t, http.MethodGet, "/api/admin/jewel/qr", nil, withBearer(tokenFor(t, owner)))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "http://menus.test/jewel/", body["url"])
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/menuvi/menuvi/internal/config"
	dbpkg "github.com/menuvi/menuvi/internal/db"
	"github.com/menuvi/menuvi/internal/models"
	"github.com/menuvi/menuvi/internal/routes"
	"github.com/menuvi/menuvi/internal/session"
)

const testJWTSecret = "test-secret"

// setupTest wires a full router against a throwaway in-memory database and
// an in-memory session store.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     testJWTSecret,
		PublicBaseURL: "http://menus.test",
		SessionTTL:    time.Hour,
	}
	store := session.NewMemoryStore(cfg.SessionTTL)

	r := gin.New()
	routes.RegisterRoutes(r, db, store, cfg)
	return r, db
}

// --------- fixtures ---------

func createRestaurant(t *testing.T, db *gorm.DB, name, slug string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{Name: name, Slug: slug}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return r
}

func createCategory(t *testing.T, db *gorm.DB, restaurantID uint, name, menuType string, sortOrder int) *models.Category {
	t.Helper()
	c := &models.Category{
		RestaurantID: restaurantID,
		Name:         name,
		MenuType:     menuType,
		SortOrder:    sortOrder,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func createItem(t *testing.T, db *gorm.DB, categoryID uint, name string, priceCents *int64, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		CategoryID: categoryID,
		Name:       name,
		PriceCents: priceCents,
		Available:  available,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func createUser(t *testing.T, db *gorm.DB, email, password, role string, restaurantID *uint) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		RestaurantID: restaurantID,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	var restaurantID uint
	if user.RestaurantID != nil {
		restaurantID = *user.RestaurantID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":          user.ID,
		"restaurantId": restaurantID,
		"role":         user.Role,
		"exp":          time.Now().Add(time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func cents(v int64) *int64 { return &v }

// --------- request plumbing ---------

// client keeps cookies between requests, standing in for one browser.
type client struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newClient(r *gin.Engine) *client {
	return &client{router: r}
}

type requestOpt func(*http.Request)

func withXHR() requestOpt {
	return func(req *http.Request) {
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
}

func withBearer(token string) requestOpt {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func withJSONAccept() requestOpt {
	return func(req *http.Request) {
		req.Header.Set("Accept", "application/json")
	}
}

func (c *client) do(t *testing.T, method, path string, body any, opts ...requestOpt) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		c.setCookie(cookie)
	}
	return w
}

func (c *client) setCookie(cookie *http.Cookie) {
	for i, existing := range c.cookies {
		if existing.Name == cookie.Name {
			c.cookies[i] = cookie
			return
		}
	}
	c.cookies = append(c.cookies, cookie)
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

package seed

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/menuvi/menuvi/internal/db"
	"github.com/menuvi/menuvi/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestDemoSeedIsIdempotent(t *testing.T) {
	db := setupDB(t)

	assert.NoError(t, Demo(db, false))

	restaurants := countRows(t, db, &models.Restaurant{})
	users := countRows(t, db, &models.User{})
	categories := countRows(t, db, &models.Category{})
	items := countRows(t, db, &models.MenuItem{})

	assert.Equal(t, int64(1), restaurants)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(len(demoMenu)), categories)
	assert.Positive(t, items)

	assert.NoError(t, Demo(db, false))

	assert.Equal(t, restaurants, countRows(t, db, &models.Restaurant{}))
	assert.Equal(t, users, countRows(t, db, &models.User{}))
	assert.Equal(t, categories, countRows(t, db, &models.Category{}))
	assert.Equal(t, items, countRows(t, db, &models.MenuItem{}))
}

func TestDemoSeedDropRebuildsMenu(t *testing.T) {
	db := setupDB(t)

	assert.NoError(t, Demo(db, false))
	items := countRows(t, db, &models.MenuItem{})

	assert.NoError(t, Demo(db, true))

	// Drop wipes menu data but never accounts, then reseeds in full.
	assert.Equal(t, items, countRows(t, db, &models.MenuItem{}))
	assert.Equal(t, int64(1), countRows(t, db, &models.User{}))
}

func TestDemoSeedItemsAreAvailable(t *testing.T) {
	db := setupDB(t)
	assert.NoError(t, Demo(db, false))

	var unavailable int64
	db.Model(&models.MenuItem{}).Where("available = ?", false).Count(&unavailable)
	assert.Zero(t, unavailable)
}

func TestSuperadminRejectsDuplicateEmail(t *testing.T) {
	db := setupDB(t)

	assert.NoError(t, Superadmin(db, "root@menuvi.test", "secret"))
	assert.Error(t, Superadmin(db, "root@menuvi.test", "other"))
	assert.Equal(t, int64(1), countRows(t, db, &models.User{}))
}

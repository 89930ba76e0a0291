// Package testdb opens isolated in-memory sqlite databases with the full
// schema and the audit plugin, and seeds common fixtures.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/ecommerce/internal/audit"
	"github.com/Skotchmaster/ecommerce/internal/models"
	"github.com/Skotchmaster/ecommerce/internal/repo"
	pkgdb "github.com/Skotchmaster/ecommerce/pkg/db"
	pkg_hash "github.com/Skotchmaster/ecommerce/pkg/hash"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := pkgdb.Open(context.Background(), pkgdb.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Use(&audit.Plugin{}))
	require.NoError(t, repo.AutoMigrate(db))

	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return db
}

func SeedUser(t testing.TB, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	pw, err := pkg_hash.HashPassword("password123")
	require.NoError(t, err)
	u := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: pw,
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func SeedAddress(t testing.TB, db *gorm.DB, userID uint) *models.Address {
	t.Helper()

	a := &models.Address{
		UserID:      userID,
		Address:     "Jl. Merdeka 1",
		City:        "Bandung",
		Province:    "Jawa Barat",
		PostalCode:  "40111",
		PhoneNumber: "+62811000000",
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func SeedPayment(t testing.TB, db *gorm.DB, userID uint) *models.Payment {
	t.Helper()

	p := &models.Payment{
		UserID:        userID,
		PaymentType:   models.PaymentBankTransfer,
		AccountNumber: "1234567890",
		AccountName:   "Test Account",
		Provider:      "BCA",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func SeedDiscount(t testing.TB, db *gorm.DB, percentage, minPurchase, maxDiscount int64) *models.Discount {
	t.Helper()

	d := &models.Discount{
		Name:        fmt.Sprintf("%d%% off", percentage),
		Percentage:  percentage,
		MinPurchase: minPurchase,
		MaxDiscount: maxDiscount,
		Active:      true,
	}
	require.NoError(t, db.Create(d).Error)
	return d
}

// SeedProduct creates a product with its own inventory of stock units.
func SeedProduct(t testing.TB, db *gorm.DB, name string, price, stock int64, discount *models.Discount) *models.Product {
	t.Helper()

	inv := &models.ProductInventory{Quantity: stock}
	require.NoError(t, db.Create(inv).Error)

	p := &models.Product{
		Name:        name,
		Price:       price,
		InventoryID: inv.ID,
	}
	if discount != nil {
		p.DiscountID = &discount.ID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(p).Error)
	return p
}

func Stock(t testing.TB, db *gorm.DB, p *models.Product) int64 {
	t.Helper()

	var inv models.ProductInventory
	require.NoError(t, db.First(&inv, p.InventoryID).Error)
	return inv.Quantity
}

func CountOrders(t testing.TB, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

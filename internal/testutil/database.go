package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests that call it are
// skipped when no MySQL is listening on localhost:3306 with a
// 'food_locker_test' schema.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/food_locker_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Orders", "Items", "Brands", "Categories", "Stadiums", "Users", "StoreManagers"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createStadiumsTable := `
	CREATE TABLE IF NOT EXISTS Stadiums (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`

	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS Categories (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		stadiumId VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		nameEn VARCHAR(255),
		INDEX idx_stadium (stadiumId)
	)`

	createBrandsTable := `
	CREATE TABLE IF NOT EXISTS Brands (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		categoryId VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		nameEn VARCHAR(255),
		INDEX idx_category (categoryId)
	)`

	createItemsTable := `
	CREATE TABLE IF NOT EXISTS Items (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		brandId VARCHAR(36) NOT NULL,
		name VARCHAR(255) NOT NULL,
		nameEn VARCHAR(255),
		description TEXT,
		price BIGINT NOT NULL,
		image VARCHAR(255),
		INDEX idx_brand (brandId)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		userId VARCHAR(64),
		items JSON NOT NULL,
		total BIGINT NOT NULL,
		deliveryMethod VARCHAR(20) NOT NULL,
		paymentMethod VARCHAR(50) NOT NULL,
		seatBlock VARCHAR(20),
		seatNumber VARCHAR(20),
		status VARCHAR(20) NOT NULL,
		brandIds JSON,
		createdAt DATETIME(3) NOT NULL,
		updatedAt DATETIME(3) NOT NULL,
		INDEX idx_user (userId),
		INDEX idx_status (status),
		INDEX idx_created (createdAt)
	)`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS Users (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		userId VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(30),
		newsletter TINYINT(1) NOT NULL DEFAULT 0,
		authProvider VARCHAR(20) NOT NULL DEFAULT 'email',
		createdAt DATETIME(3) NOT NULL,
		updatedAt DATETIME(3) NOT NULL
	)`

	createStoreManagersTable := `
	CREATE TABLE IF NOT EXISTS StoreManagers (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		brandId VARCHAR(36),
		brandName VARCHAR(255),
		stadiumId VARCHAR(36),
		stadiumName VARCHAR(255),
		role VARCHAR(20),
		isAdmin TINYINT(1) NOT NULL DEFAULT 0
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Stadiums", createStadiumsTable},
		{"Categories", createCategoriesTable},
		{"Brands", createBrandsTable},
		{"Items", createItemsTable},
		{"Orders", createOrdersTable},
		{"Users", createUsersTable},
		{"StoreManagers", createStoreManagersTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: an admin
// account, a seller with one shop, and a small category tree with a few
// products so the catalog endpoints return something out of the box.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	// pgx uses the extended protocol, so one statement per Exec.
	stmts := []string{
		`INSERT INTO users (email, password_hash, full_name, role)
		 VALUES ('admin@vendora.local', '` + string(hash) + `', 'Admin', 'admin')`,
		`INSERT INTO users (email, password_hash, full_name, role)
		 VALUES ('seller@vendora.local', '` + string(hash) + `', 'Demo Seller', 'seller')`,
		`INSERT INTO shops (owner_id, name, slug, description)
		 SELECT id, 'Demo Shop', 'demo-shop', 'Seeded development shop'
		 FROM users WHERE email = 'seller@vendora.local'`,
		`INSERT INTO categories (name, slug, level, display_order)
		 VALUES ('Electronics', 'electronics', 0, 0)`,
		`INSERT INTO categories (name, slug, level, display_order)
		 VALUES ('Fashion', 'fashion', 0, 1)`,
		`INSERT INTO categories (name, slug, parent_id, level, display_order)
		 SELECT 'Phones', 'phones', id, 1, 0 FROM categories WHERE slug = 'electronics'`,
		`INSERT INTO categories (name, slug, parent_id, level, display_order)
		 SELECT 'Laptops', 'laptops', id, 1, 1 FROM categories WHERE slug = 'electronics'`,
		`INSERT INTO products (shop_id, category_id, name, slug, description)
		 SELECT s.id, c.id, 'Demo Phone', 'demo-phone', 'Seeded product'
		 FROM shops s, categories c
		 WHERE s.slug = 'demo-shop' AND c.slug = 'phones'`,
		`INSERT INTO product_variants (product_id, sku, color, price, stock)
		 SELECT id, 'DEMO-PHONE-BLK', 'black', 299.00, 25 FROM products WHERE slug = 'demo-phone'`,
		`INSERT INTO product_variants (product_id, sku, color, price, stock)
		 SELECT id, 'DEMO-PHONE-WHT', 'white', 319.00, 10 FROM products WHERE slug = 'demo-phone'`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("seed exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development data",
		"admin", "admin@vendora.local",
		"password", "admin",
	)

	return nil
}

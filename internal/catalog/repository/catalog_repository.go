package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

func (r *MySQLCatalogRepository) ListStadiums(ctx context.Context) ([]domain.Stadium, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM Stadiums`)
	if err != nil {
		return nil, fmt.Errorf("listing stadiums: %w", err)
	}
	defer rows.Close()

	stadiums := []domain.Stadium{}
	for rows.Next() {
		var s domain.Stadium
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning stadium row: %w", err)
		}
		stadiums = append(stadiums, s)
	}
	return stadiums, rows.Err()
}

func (r *MySQLCatalogRepository) ListCategories(ctx context.Context, stadiumID string) ([]domain.Category, error) {
	query := `SELECT id, stadiumId, name, nameEn FROM Categories WHERE stadiumId = ?`

	rows, err := r.db.QueryContext(ctx, query, stadiumID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		var nameEn sql.NullString
		if err := rows.Scan(&c.ID, &c.StadiumID, &c.Name, &nameEn); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		c.NameEn = nameEn.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *MySQLCatalogRepository) ListBrands(ctx context.Context, categoryID string) ([]domain.Brand, error) {
	query := `SELECT id, categoryId, name, nameEn FROM Brands WHERE categoryId = ?`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	return scanBrands(rows)
}

func (r *MySQLCatalogRepository) FindBrand(ctx context.Context, id string) (*domain.Brand, error) {
	query := `SELECT id, categoryId, name, nameEn FROM Brands WHERE id = ?`

	var b domain.Brand
	var nameEn sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.CategoryID, &b.Name, &nameEn)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("brand %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying brand by id: %w", err)
	}
	b.NameEn = nameEn.String

	return &b, nil
}

func (r *MySQLCatalogRepository) ListItems(ctx context.Context, brandID string) ([]domain.Item, error) {
	query := itemSelect + ` WHERE brandId = ?`

	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MySQLCatalogRepository) ListAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, itemSelect)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *MySQLCatalogRepository) ListItemsByBrandIDs(ctx context.Context, brandIDs []string) ([]domain.Item, error) {
	if len(brandIDs) == 0 {
		return []domain.Item{}, nil
	}

	placeholders := make([]string, len(brandIDs))
	args := make([]any, len(brandIDs))
	for i, id := range brandIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := itemSelect + fmt.Sprintf(" WHERE brandId IN (%s)", strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items by brands: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Seed-time inserts. Catalog entities have no other write path.

func (r *MySQLCatalogRepository) InsertStadium(ctx context.Context, s domain.Stadium) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO Stadiums (id, name) VALUES (?, ?)`, s.ID, s.Name)
	if err != nil {
		return fmt.Errorf("inserting stadium: %w", err)
	}
	return nil
}

func (r *MySQLCatalogRepository) InsertCategory(ctx context.Context, c domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO Categories (id, stadiumId, name, nameEn) VALUES (?, ?, ?, ?)`,
		c.ID, c.StadiumID, c.Name, nullString(c.NameEn),
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *MySQLCatalogRepository) InsertBrand(ctx context.Context, b domain.Brand) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO Brands (id, categoryId, name, nameEn) VALUES (?, ?, ?, ?)`,
		b.ID, b.CategoryID, b.Name, nullString(b.NameEn),
	)
	if err != nil {
		return fmt.Errorf("inserting brand: %w", err)
	}
	return nil
}

func (r *MySQLCatalogRepository) InsertItem(ctx context.Context, i domain.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO Items (id, brandId, name, nameEn, description, price, image) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.BrandID, i.Name, nullString(i.NameEn), nullString(i.Description), i.Price, nullString(i.Image),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

const itemSelect = `SELECT id, brandId, name, nameEn, description, price, image FROM Items`

func scanBrands(rows *sql.Rows) ([]domain.Brand, error) {
	brands := []domain.Brand{}
	for rows.Next() {
		var b domain.Brand
		var nameEn sql.NullString
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Name, &nameEn); err != nil {
			return nil, fmt.Errorf("scanning brand row: %w", err)
		}
		b.NameEn = nameEn.String
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func scanItems(rows *sql.Rows) ([]domain.Item, error) {
	items := []domain.Item{}
	for rows.Next() {
		var i domain.Item
		var nameEn, description, image sql.NullString
		if err := rows.Scan(&i.ID, &i.BrandID, &i.Name, &nameEn, &description, &i.Price, &image); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		i.NameEn = nameEn.String
		i.Description = description.String
		i.Image = image.String
		items = append(items, i)
	}
	return items, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
)

type MySQLManagerRepository struct {
	db *sql.DB
}

func NewMySQLManagerRepository(db *sql.DB) *MySQLManagerRepository {
	return &MySQLManagerRepository{db: db}
}

const managerSelect = `
	SELECT id, username, password, brandId, brandName, stadiumId, stadiumName, role, isAdmin
	FROM StoreManagers
`

func (r *MySQLManagerRepository) FindByUsername(ctx context.Context, username string) (*domain.StoreManager, error) {
	manager, err := scanManager(r.db.QueryRowContext(ctx, managerSelect+` WHERE username = ?`, username))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("store manager %s not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying store manager by username: %w", err)
	}
	return manager, nil
}

func (r *MySQLManagerRepository) FindByID(ctx context.Context, id string) (*domain.StoreManager, error) {
	manager, err := scanManager(r.db.QueryRowContext(ctx, managerSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("store manager %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying store manager by id: %w", err)
	}
	return manager, nil
}

func (r *MySQLManagerRepository) Insert(ctx context.Context, manager *domain.StoreManager) error {
	query := `
		INSERT INTO StoreManagers (id, username, password, brandId, brandName, stadiumId, stadiumName, role, isAdmin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		manager.ID, manager.Username, manager.Password,
		nullString(manager.BrandID), nullString(manager.BrandName),
		nullString(manager.StadiumID), nullString(manager.StadiumName),
		nullString(manager.Role), manager.IsAdmin,
	)
	if err != nil {
		return fmt.Errorf("inserting store manager: %w", err)
	}

	return nil
}

func scanManager(row *sql.Row) (*domain.StoreManager, error) {
	var m domain.StoreManager
	var brandID, brandName, stadiumID, stadiumName, role sql.NullString

	err := row.Scan(
		&m.ID, &m.Username, &m.Password,
		&brandID, &brandName, &stadiumID, &stadiumName, &role, &m.IsAdmin,
	)
	if err != nil {
		return nil, err
	}

	m.BrandID = brandID.String
	m.BrandName = brandName.String
	m.StadiumID = stadiumID.String
	m.StadiumName = stadiumName.String
	m.Role = role.String

	return &m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

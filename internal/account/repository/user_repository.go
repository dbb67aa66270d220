package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, userId, name, email, phone, newsletter, authProvider, createdAt, updatedAt
		FROM Users
		WHERE userId = ?
	`

	var u domain.User
	var name, email, phone sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&u.ID, &u.UserID, &name, &email, &phone,
		&u.Newsletter, &u.AuthProvider, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by userId: %w", err)
	}

	u.Name = name.String
	u.Email = email.String
	u.Phone = phone.String

	return &u, nil
}

func (r *MySQLUserRepository) Insert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO Users (id, userId, name, email, phone, newsletter, authProvider, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.UserID, user.Name, user.Email, user.Phone,
		user.Newsletter, user.AuthProvider, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func (r *MySQLUserRepository) UpdatePhone(ctx context.Context, userID, phone string, updatedAt time.Time) error {
	query := `UPDATE Users SET phone = ?, updatedAt = ? WHERE userId = ?`

	result, err := r.db.ExecContext(ctx, query, phone, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("updating user phone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
	}

	return nil
}

func (r *MySQLUserRepository) UpdateProfile(ctx context.Context, userID string, fields map[string]any, updatedAt time.Time) error {
	allowed := map[string]string{
		"name":       "name",
		"email":      "email",
		"phone":      "phone",
		"newsletter": "newsletter",
	}

	setClause := ""
	args := []any{}
	for field, value := range fields {
		column, ok := allowed[field]
		if !ok {
			continue
		}
		if setClause != "" {
			setClause += ", "
		}
		setClause += column + " = ?"
		args = append(args, value)
	}

	if setClause == "" {
		return nil
	}

	setClause += ", updatedAt = ?"
	args = append(args, updatedAt, userID)

	// MySQL reports zero affected rows for a no-op update, so existence is
	// left to the caller's follow-up read.
	if _, err := r.db.ExecContext(ctx, "UPDATE Users SET "+setClause+" WHERE userId = ?", args...); err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}

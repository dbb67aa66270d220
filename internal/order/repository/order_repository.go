package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// ListQuery is the resolved form of domain.OrderFilter: the synthetic
// "active" status has already been expanded by the service.
type ListQuery struct {
	UserID   string
	Statuses []domain.OrderStatus
	BrandID  string
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	var brandIDsJSON []byte
	if len(order.BrandIDs) > 0 {
		brandIDsJSON, err = json.Marshal(order.BrandIDs)
		if err != nil {
			return fmt.Errorf("marshaling order brandIds: %w", err)
		}
	}

	query := `
		INSERT INTO Orders (id, userId, items, total, deliveryMethod, paymentMethod,
		                    seatBlock, seatNumber, status, brandIds, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		order.ID, nullString(order.UserID), itemsJSON, order.Total,
		string(order.DeliveryMethod), order.PaymentMethod,
		nullString(order.SeatBlock), nullString(order.SeatNumber),
		string(order.Status), nullBytes(brandIDsJSON),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, userId, items, total, deliveryMethod, paymentMethod,
		       seatBlock, seatNumber, status, brandIds, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, q ListQuery) ([]domain.Order, error) {
	var conditions []string
	var args []any

	if q.UserID != "" {
		conditions = append(conditions, "userId = ?")
		args = append(args, q.UserID)
	}
	if len(q.Statuses) > 0 {
		placeholders := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if q.BrandID != "" {
		conditions = append(conditions, "JSON_CONTAINS(brandIds, JSON_QUOTE(?))")
		args = append(args, q.BrandID)
	}

	query := `
		SELECT id, userId, items, total, deliveryMethod, paymentMethod,
		       seatBlock, seatNumber, status, brandIds, createdAt, updatedAt
		FROM Orders
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY createdAt DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the status unconditionally and refreshes
// updatedAt. Last write wins; there is no transition check here.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ?, updatedAt = UTC_TIMESTAMP(3) WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var userID, seatBlock, seatNumber sql.NullString
	var itemsJSON []byte
	var brandIDsJSON []byte

	err := row.Scan(
		&order.ID, &userID, &itemsJSON, &order.Total,
		&order.DeliveryMethod, &order.PaymentMethod,
		&seatBlock, &seatNumber, &order.Status, &brandIDsJSON,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.UserID = userID.String
	order.SeatBlock = seatBlock.String
	order.SeatNumber = seatNumber.String

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshaling order items: %w", err)
	}
	if len(brandIDsJSON) > 0 {
		if err := json.Unmarshal(brandIDsJSON, &order.BrandIDs); err != nil {
			return nil, fmt.Errorf("unmarshaling order brandIds: %w", err)
		}
	}

	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

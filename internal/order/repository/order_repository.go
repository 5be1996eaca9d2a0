package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"retailorders/internal/domain"
	"retailorders/internal/errors"
)

const selectOrders = `
	SELECT o.id, o.orderId, o.userId, COALESCE(u.email, ''), o.productId,
	       COALESCE(p.name, ''), o.quantity, o.status, o.uploadedImageUrl,
	       o.estimatedDelivery, o.createdAt, o.updatedAt
	FROM Orders o
	LEFT JOIN Users u ON u.id = o.userId
	LEFT JOIN Products p ON p.id = o.productId
`

type rowScanner interface {
	Scan(dest ...any) error
}

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert stores a new order and sets its ID. A duplicate orderId surfaces as
// the wrapped driver error (MySQL 1062) so callers can detect it.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO Orders (orderId, userId, productId, quantity, status,
		                    uploadedImageUrl, estimatedDelivery)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		order.OrderID, order.UserID, order.ProductID, order.Quantity, order.Status,
		order.UploadedImageURL, order.EstimatedDelivery.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting inserted order id: %w", err)
	}
	order.ID = uint(id)

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrders+` WHERE o.id = ?`, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

// FindByIDAndUser returns the order only when it belongs to userID; someone
// else's order is reported as not found.
func (r *MySQLOrderRepository) FindByIDAndUser(ctx context.Context, id uint, userID int) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, selectOrders+` WHERE o.id = ? AND o.userId = ?`, id, userID)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id and user: %w", err)
	}

	return order, nil
}

func (r *MySQLOrderRepository) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return r.list(ctx, selectOrders+` WHERE o.userId = ? ORDER BY o.createdAt DESC, o.id DESC`, userID)
}

// ListAll returns every order, newest first.
func (r *MySQLOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, selectOrders+` ORDER BY o.createdAt DESC, o.id DESC`)
}

func (r *MySQLOrderRepository) Update(ctx context.Context, id uint, productID, quantity int, imageURL string) error {
	query := `
		UPDATE Orders
		SET productId = ?, quantity = ?, uploadedImageUrl = ?, updatedAt = CURRENT_TIMESTAMP(6)
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, productID, quantity, imageURL, id)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	return checkAffected(result, id)
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status string, estimatedDelivery time.Time) error {
	query := `
		UPDATE Orders
		SET status = ?, estimatedDelivery = ?, updatedAt = CURRENT_TIMESTAMP(6)
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, estimatedDelivery.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return checkAffected(result, id)
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	return checkAffected(result, id)
}

func (r *MySQLOrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
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

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.OrderID, &order.UserID, &order.UserEmail, &order.ProductID,
		&order.ProductName, &order.Quantity, &order.Status, &order.UploadedImageURL,
		&order.EstimatedDelivery, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func checkAffected(result sql.Result, id uint) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

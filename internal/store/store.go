package store

import (
	"context"
	"errors"
	"time"

	"AssemblyOrders/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrDuplicateOrder = errors.New("duplicate razorpay order id")
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

const orderColumns = `id, razorpay_order_id, razorpay_payment_id, razorpay_signature,
	product, qty, amount_paise, customer_name, customer_email, customer_phone,
	delivery_address, status, created_at, verified_at`

// CreateOrder inserts a new row with status 'created' and fills in the
// generated id and created_at. A second insert with the same
// razorpay_order_id fails with ErrDuplicateOrder.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO orders (
			razorpay_order_id, product, qty, amount_paise,
			customer_name, customer_email, customer_phone, delivery_address, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at
	`,
		order.RazorpayOrderID,
		order.Product,
		order.Qty,
		order.AmountPaise,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.DeliveryAddress,
		order.Status,
	)
	if err := row.Scan(&order.ID, &order.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return err
	}
	return nil
}

// MarkPaid records a verified payment in a single atomic update. The
// update is gated on status='created', so the payment fields and
// verified_at are written exactly once; a repeat call for an already
// paid order is a no-op success. Unknown order ids fail with ErrNotFound.
func (s *Store) MarkPaid(ctx context.Context, orderID, paymentID, sig string, verifiedAt time.Time) error {
	res, err := s.Pool.Exec(ctx, `
		UPDATE orders
		SET razorpay_payment_id=$2, razorpay_signature=$3, status=$4, verified_at=$5
		WHERE razorpay_order_id=$1 AND status=$6
	`, orderID, paymentID, sig, models.OrderPaid, verifiedAt, models.OrderCreated)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	var status models.OrderStatus
	row := s.Pool.QueryRow(ctx, `SELECT status FROM orders WHERE razorpay_order_id=$1`, orderID)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE razorpay_order_id=$1
	`, orderID)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	if err := row.Scan(
		&order.ID,
		&order.RazorpayOrderID,
		&order.PaymentID,
		&order.Signature,
		&order.Product,
		&order.Qty,
		&order.AmountPaise,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.DeliveryAddress,
		&order.Status,
		&order.CreatedAt,
		&order.VerifiedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

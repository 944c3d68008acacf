package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage uses; declared so tests
// can substitute a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'buyer',
            payment_details JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            seller_name TEXT NOT NULL DEFAULT '',
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            eco_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            stock INT NOT NULL DEFAULT 10,
            for_rent BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            buyer_email TEXT NOT NULL,
            items JSONB NOT NULL,
            subtotal DOUBLE PRECISION NOT NULL,
            tax DOUBLE PRECISION NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            transaction_id TEXT,
            payment_verified_at TIMESTAMPTZ,
            status TEXT NOT NULL,
            status_history JSONB NOT NULL DEFAULT '[]',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_items ON orders USING GIN (items jsonb_path_ops)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, phone, address, role, payment_details)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	details, err := marshalNullable(user.PaymentDetails)
	if err != nil {
		return nil, err
	}
	stored := *user
	err = r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Phone, user.Address, user.Role, details).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, phone, address, role, payment_details, created_at
                   FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, password_hash, phone, address, role, payment_details, created_at
                   FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdatePaymentDetails(ctx context.Context, id int64, details *model.PaymentDetails) error {
	const query = `UPDATE users SET payment_details=$1 WHERE id=$2`
	encoded, err := marshalNullable(details)
	if err != nil {
		return err
	}
	tag, err := r.storage.pool.Exec(ctx, query, encoded, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, `SELECT COUNT(*) FROM users`)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var details []byte
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.Role, &details, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &u.PaymentDetails); err != nil {
			return nil, fmt.Errorf("decode payment details: %w", err)
		}
	}
	return &u, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (seller_id, seller_name, name, description, price, category, eco_rating, stock, for_rent)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`
	stored := *product
	err := r.storage.pool.QueryRow(ctx, query,
		product.SellerID, product.SellerName, product.Name, product.Description,
		product.Price, product.Category, product.EcoRating, product.Stock, product.ForRent).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, seller_id, seller_name, name, description, price, category, eco_rating, stock, for_rent, created_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SellerID, &p.SellerName, &p.Name, &p.Description,
		&p.Price, &p.Category, &p.EcoRating, &p.Stock, &p.ForRent, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, seller_id, seller_name, name, description, price, category, eco_rating, stock, for_rent, created_at
                   FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.SellerName, &p.Name, &p.Description,
			&p.Price, &p.Category, &p.EcoRating, &p.Stock, &p.ForRent, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, `SELECT COUNT(*) FROM products`)
}

// --- OrderRepository implementation ---

const orderColumns = `id, buyer_id, buyer_email, items, subtotal, tax, total, payment_method,
                      delivery_address, transaction_id, payment_verified_at, status, status_history,
                      created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (buyer_id, buyer_email, items, subtotal, tax, total, payment_method,
                                       delivery_address, status, status_history, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING id`
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}
	history, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return nil, err
	}

	stored := *order
	err = r.storage.pool.QueryRow(ctx, query,
		order.BuyerID, order.BuyerEmail, items, order.Subtotal, order.Tax, order.Total,
		order.PaymentMethod, order.DeliveryAddress, order.Status, history,
		order.CreatedAt, order.UpdatedAt).
		Scan(&stored.ID)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error) {
	filter, err := json.Marshal([]map[string]int64{{"seller_id": sellerID}})
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE items @> $1::jsonb ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// Transition serializes concurrent updates of the same order through a row
// lock: load FOR UPDATE, mutate in memory, persist — all in one transaction.
func (r *orderRepository) Transition(ctx context.Context, id int64, mutate func(*model.Order) error) (*model.Order, error) {
	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrderRow(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}

		if err := mutate(order); err != nil {
			return err
		}

		history, err := json.Marshal(order.StatusHistory)
		if err != nil {
			return err
		}
		const update = `UPDATE orders
                        SET status=$1, transaction_id=$2, payment_verified_at=$3, status_history=$4, updated_at=$5
                        WHERE id=$6`
		if _, err := tx.Exec(ctx, update,
			order.Status, order.TransactionID, order.PaymentVerifiedAt, history, order.UpdatedAt, order.ID); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SelectStaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status=$1 AND created_at < $2
              ORDER BY created_at
              LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, model.OrderStatusAwaitingPayment, before, limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, `SELECT COUNT(*) FROM orders`)
}

func scanOrder(scan func(dest ...any) error) (*model.Order, error) {
	var o model.Order
	var items, history []byte
	err := scan(&o.ID, &o.BuyerID, &o.BuyerEmail, &items, &o.Subtotal, &o.Tax, &o.Total,
		&o.PaymentMethod, &o.DeliveryAddress, &o.TransactionID, &o.PaymentVerifiedAt,
		&o.Status, &history, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &o.StatusHistory); err != nil {
			return nil, fmt.Errorf("decode status history: %w", err)
		}
	}
	return &o, nil
}

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	order, err := scanOrder(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func count(ctx context.Context, pool pgxPool, query string) (int64, error) {
	var n int64
	if err := pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func marshalNullable(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch d := v.(type) {
	case *model.PaymentDetails:
		if d == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

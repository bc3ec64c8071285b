// Package resolver maps natural-key values from source rows to surrogate
// identifiers, creating reference entities on first sight.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dataroast/coffeesales/pkg/salesdb"
)

// Querier is the database surface the resolver needs. *pgxpool.Pool and
// *salesdb.DB both satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Defaults configures the sentinel entities resolved when a source row
// carries no store or payment method. The exact names are business policy,
// not data.
type Defaults struct {
	StoreName          string
	StoreAddress       string
	StoreCity          string
	PaymentType        string
	PaymentDescription string
}

// DefaultPolicy returns the shipped fallback sentinels.
func DefaultPolicy() Defaults {
	return Defaults{
		StoreName:          "Main Store",
		StoreAddress:       "No address",
		StoreCity:          "No city",
		PaymentType:        "Cash",
		PaymentDescription: "Cash payment",
	}
}

// Resolver holds one in-memory cache per entity type, keyed by normalized
// natural key. A Resolver is owned by a single import run and is not safe
// for concurrent use; the pipeline is sequential by design (see the
// importer package).
type Resolver struct {
	db       Querier
	defaults Defaults

	products map[string]int64
	clients  map[string]int64
	stores   map[string]int64
	payments map[string]int64
}

// New creates a Resolver with the shipped default policy.
func New(db Querier) *Resolver {
	return NewWithDefaults(db, DefaultPolicy())
}

// NewWithDefaults creates a Resolver with a custom fallback policy.
func NewWithDefaults(db Querier, defaults Defaults) *Resolver {
	return &Resolver{
		db:       db,
		defaults: defaults,
		products: make(map[string]int64),
		clients:  make(map[string]int64),
		stores:   make(map[string]int64),
		payments: make(map[string]int64),
	}
}

// Normalize produces the natural-key form of a raw value: trimmed and
// case-folded. Two raw values normalizing identically resolve to the same
// surrogate identifier.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Product resolves a product name to its identifier, creating the product
// with the given attributes on first sight. An empty name is an error:
// there is no sentinel product to merge unrelated sales into.
func (r *Resolver) Product(ctx context.Context, name, category string, basePrice *float64) (int64, error) {
	key := Normalize(name)
	if key == "" {
		return 0, fmt.Errorf("product: %w", salesdb.ErrEmptyKey)
	}

	if id, ok := r.products[key]; ok {
		return id, nil
	}

	id, err := r.lookup(ctx,
		"SELECT id FROM products WHERE lower(name) = $1", key)
	if errors.Is(err, pgx.ErrNoRows) {
		id, err = r.create(ctx,
			"INSERT INTO products (name, category, base_price) VALUES ($1, $2, $3) RETURNING id",
			strings.TrimSpace(name), textOrNil(category), basePrice)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve product %q: %w", name, err)
	}

	r.products[key] = id
	return id, nil
}

// Client resolves an anonymous client code to its identifier. An empty
// code means an anonymous sale: it resolves to no client at all, reported
// by ok=false, never to a sentinel entity.
func (r *Resolver) Client(ctx context.Context, code, clientType string) (id int64, ok bool, err error) {
	key := Normalize(code)
	if key == "" {
		return 0, false, nil
	}

	if id, ok := r.clients[key]; ok {
		return id, true, nil
	}

	id, err = r.lookup(ctx,
		"SELECT id FROM clients WHERE lower(code) = $1", key)
	if errors.Is(err, pgx.ErrNoRows) {
		id, err = r.create(ctx,
			"INSERT INTO clients (code, client_type) VALUES ($1, $2) RETURNING id",
			strings.TrimSpace(code), textOrNil(clientType))
	}
	if err != nil {
		return 0, false, fmt.Errorf("resolve client %q: %w", code, err)
	}

	r.clients[key] = id
	return id, true, nil
}

// Store resolves a store name to its identifier. An empty name falls back
// to the configured default store, which is itself resolved through the
// same cache-then-lookup-then-create path.
func (r *Resolver) Store(ctx context.Context, name, address, city string) (int64, error) {
	key := Normalize(name)
	if key == "" {
		return r.Store(ctx, r.defaults.StoreName, r.defaults.StoreAddress, r.defaults.StoreCity)
	}

	if id, ok := r.stores[key]; ok {
		return id, nil
	}

	id, err := r.lookup(ctx,
		"SELECT id FROM stores WHERE lower(name) = $1", key)
	if errors.Is(err, pgx.ErrNoRows) {
		id, err = r.create(ctx,
			"INSERT INTO stores (name, address, city) VALUES ($1, $2, $3) RETURNING id",
			strings.TrimSpace(name), textOrNil(address), textOrNil(city))
	}
	if err != nil {
		return 0, fmt.Errorf("resolve store %q: %w", name, err)
	}

	r.stores[key] = id
	return id, nil
}

// PaymentMethod resolves a payment type to its identifier. An empty type
// falls back to the configured default payment method.
func (r *Resolver) PaymentMethod(ctx context.Context, payType, description string) (int64, error) {
	key := Normalize(payType)
	if key == "" {
		return r.PaymentMethod(ctx, r.defaults.PaymentType, r.defaults.PaymentDescription)
	}

	if id, ok := r.payments[key]; ok {
		return id, nil
	}

	id, err := r.lookup(ctx,
		"SELECT id FROM payment_methods WHERE lower(pay_type) = $1", key)
	if errors.Is(err, pgx.ErrNoRows) {
		id, err = r.create(ctx,
			"INSERT INTO payment_methods (pay_type, description) VALUES ($1, $2) RETURNING id",
			strings.TrimSpace(payType), textOrNil(description))
	}
	if err != nil {
		return 0, fmt.Errorf("resolve payment method %q: %w", payType, err)
	}

	r.payments[key] = id
	return id, nil
}

// CachedKeys reports the number of distinct normalized keys cached per
// entity type, in the order products, clients, stores, payment methods.
func (r *Resolver) CachedKeys() (products, clients, stores, payments int) {
	return len(r.products), len(r.clients), len(r.stores), len(r.payments)
}

func (r *Resolver) lookup(ctx context.Context, sql, key string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, sql, key).Scan(&id)
	return id, err
}

func (r *Resolver) create(ctx context.Context, sql string, args ...interface{}) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, sql, args...).Scan(&id)
	return id, err
}

// textOrNil maps an empty attribute to SQL NULL.
func textOrNil(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

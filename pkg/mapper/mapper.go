// Package mapper translates raw source rows into fully-resolved sale
// records: fuzzy header binding, typed cell coercion, derived calendar
// fields, and entity resolution for the foreign keys.
package mapper

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dataroast/coffeesales/pkg/salesdb"
)

// EntityResolver is the resolution surface the mapper drives. It is
// satisfied by *resolver.Resolver.
type EntityResolver interface {
	Product(ctx context.Context, name, category string, basePrice *float64) (int64, error)
	Client(ctx context.Context, code, clientType string) (int64, bool, error)
	Store(ctx context.Context, name, address, city string) (int64, error)
	PaymentMethod(ctx context.Context, payType, description string) (int64, error)
}

// Locale holds the weekday and month name tables used for derived fields.
// Weekdays index 0-6 from Sunday; Months index 0-11 from January (the
// persisted month index is 1-12).
type Locale struct {
	Weekdays [7]string
	Months   [12]string
}

// EnglishLocale returns the shipped name tables.
func EnglishLocale() Locale {
	return Locale{
		Weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		Months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
	}
}

// Day-period buckets. Half-open on the upper end: Morning before 12:00,
// Afternoon 12:00-17:59, Evening from 18:00.
const (
	PeriodMorning   = "Morning"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
)

// Sale is a fully-resolved sale candidate ready for insertion.
type Sale struct {
	SaleDate     time.Time
	SoldAt       time.Time
	TimeOfDay    string
	ProductID    int64
	PaymentID    int64
	ClientID     *int64
	StoreID      int64
	UnitPrice    float64
	Quantity     int
	TotalAmount  float64
	DayPeriod    string
	WeekdayName  string
	MonthName    string
	WeekdayIndex int
	MonthIndex   int
}

// RowMapper maps raw rows to Sale records.
type RowMapper struct {
	resolver EntityResolver
	matchers Matchers
	locale   Locale
	now      func() time.Time
}

// Option configures a RowMapper.
type Option func(*RowMapper)

// WithMatchers overrides the header vocabulary.
func WithMatchers(m Matchers) Option {
	return func(rm *RowMapper) { rm.matchers = m }
}

// WithLocale overrides the weekday/month name tables.
func WithLocale(l Locale) Option {
	return func(rm *RowMapper) { rm.locale = l }
}

// WithClock overrides the fallback timestamp source for rows without a
// usable date cell.
func WithClock(now func() time.Time) Option {
	return func(rm *RowMapper) { rm.now = now }
}

// New creates a RowMapper driving the given resolver.
func New(res EntityResolver, opts ...Option) *RowMapper {
	rm := &RowMapper{
		resolver: res,
		matchers: DefaultMatchers(),
		locale:   EnglishLocale(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// Bind evaluates the header row once for a sheet.
func (rm *RowMapper) Bind(headers []string) *Binding {
	return Bind(headers, rm.matchers)
}

// MapRow maps one data row to a Sale. Product, store, and payment method
// resolution are mandatory; a failure in any of them fails the row.
// Client resolution is optional: an absent client code yields a nil
// ClientID (anonymous sale).
func (rm *RowMapper) MapRow(ctx context.Context, b *Binding, row []string) (*Sale, error) {
	rawDate := b.Value(FieldDate, row)
	product := b.Value(FieldProduct, row)
	category := b.Value(FieldCategory, row)
	rawPrice := b.Value(FieldPrice, row)
	rawQty := b.Value(FieldQuantity, row)
	client := b.Value(FieldClient, row)
	payment := b.Value(FieldPayment, row)
	store := b.Value(FieldStore, row)

	soldAt := rm.parseDate(rawDate)
	price := ParsePrice(rawPrice)
	qty := ParseQuantity(rawQty)

	productID, err := rm.resolver.Product(ctx, product, category, priceAttr(price))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", salesdb.ErrMissingReference, err)
	}
	storeID, err := rm.resolver.Store(ctx, store, "", "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", salesdb.ErrMissingReference, err)
	}
	paymentID, err := rm.resolver.PaymentMethod(ctx, payment, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", salesdb.ErrMissingReference, err)
	}

	var clientID *int64
	if id, ok, err := rm.resolver.Client(ctx, client, ""); err != nil {
		return nil, err
	} else if ok {
		clientID = &id
	}

	sale := &Sale{
		SaleDate:    dateOnly(soldAt),
		SoldAt:      soldAt,
		TimeOfDay:   soldAt.Format("15:04:05"),
		ProductID:   productID,
		PaymentID:   paymentID,
		ClientID:    clientID,
		StoreID:     storeID,
		UnitPrice:   price,
		Quantity:    qty,
		TotalAmount: Total(price, qty),
	}
	rm.deriveCalendar(sale, soldAt)

	return sale, nil
}

func (rm *RowMapper) deriveCalendar(sale *Sale, t time.Time) {
	weekday := int(t.Weekday())
	month := int(t.Month())

	sale.WeekdayIndex = weekday
	sale.WeekdayName = rm.locale.Weekdays[weekday]
	sale.MonthIndex = month
	sale.MonthName = rm.locale.Months[month-1]
	sale.DayPeriod = DayPeriod(t.Hour())
}

// DayPeriod buckets a local hour into Morning, Afternoon, or Evening.
func DayPeriod(hour int) string {
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 18:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}

// Total computes unit price times quantity with decimal arithmetic, so
// 3.5 x 2 is exactly 7.0.
func Total(price float64, qty int) float64 {
	total, _ := decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		Float64()
	return total
}

func priceAttr(price float64) *float64 {
	if price == 0 {
		return nil
	}
	return &price
}

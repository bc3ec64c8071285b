package mapper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dataroast/coffeesales/pkg/salesdb"
)

// fakeResolver hands out fixed identifiers and records what it saw.
type fakeResolver struct {
	productErr error

	lastProduct  string
	lastCategory string
	lastStore    string
	lastPayment  string
	lastClient   string
}

func (f *fakeResolver) Product(_ context.Context, name, category string, _ *float64) (int64, error) {
	if f.productErr != nil {
		return 0, f.productErr
	}
	f.lastProduct = name
	f.lastCategory = category
	return 1, nil
}

func (f *fakeResolver) Client(_ context.Context, code, _ string) (int64, bool, error) {
	f.lastClient = code
	if code == "" {
		return 0, false, nil
	}
	return 2, true, nil
}

func (f *fakeResolver) Store(_ context.Context, name, _, _ string) (int64, error) {
	f.lastStore = name
	return 3, nil
}

func (f *fakeResolver) PaymentMethod(_ context.Context, payType, _ string) (int64, error) {
	f.lastPayment = payType
	return 4, nil
}

var testHeaders = []string{"Date", "Product", "Category", "Price", "Quantity", "Customer", "Payment Method", "Store"}

func TestMapRowFullyResolved(t *testing.T) {
	res := &fakeResolver{}
	rm := New(res)
	b := rm.Bind(testHeaders)

	row := []string{"2024-03-17 09:30:00", "Latte", "Coffee", "3.5", "2", "ANON-7", "card", "Centro"}

	sale, err := rm.MapRow(context.Background(), b, row)
	if err != nil {
		t.Fatalf("MapRow returned error: %v", err)
	}

	if sale.ProductID != 1 || sale.StoreID != 3 || sale.PaymentID != 4 {
		t.Errorf("unexpected reference ids: product=%d store=%d payment=%d", sale.ProductID, sale.StoreID, sale.PaymentID)
	}
	if sale.ClientID == nil || *sale.ClientID != 2 {
		t.Errorf("expected client id 2, got %v", sale.ClientID)
	}
	if sale.UnitPrice != 3.5 || sale.Quantity != 2 || sale.TotalAmount != 7.0 {
		t.Errorf("price/quantity/total = %v/%v/%v, want 3.5/2/7.0", sale.UnitPrice, sale.Quantity, sale.TotalAmount)
	}

	// 2024-03-17 is a Sunday.
	if sale.WeekdayIndex != 0 || sale.WeekdayName != "Sunday" {
		t.Errorf("weekday = %d %q, want 0 Sunday", sale.WeekdayIndex, sale.WeekdayName)
	}
	if sale.MonthIndex != 3 || sale.MonthName != "March" {
		t.Errorf("month = %d %q, want 3 March", sale.MonthIndex, sale.MonthName)
	}
	if sale.DayPeriod != PeriodMorning {
		t.Errorf("day period = %q, want Morning", sale.DayPeriod)
	}
	if sale.TimeOfDay != "09:30:00" {
		t.Errorf("time of day = %q, want 09:30:00", sale.TimeOfDay)
	}
	if !sale.SaleDate.Equal(time.Date(2024, 3, 17, 0, 0, 0, 0, sale.SoldAt.Location())) {
		t.Errorf("sale date = %v, want 2024-03-17", sale.SaleDate)
	}
}

func TestMapRowDefaults(t *testing.T) {
	res := &fakeResolver{}
	clock := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	rm := New(res, WithClock(func() time.Time { return clock }))

	// No date, malformed price, no quantity, no client.
	b := rm.Bind([]string{"Product", "Price", "Store", "Payment"})
	row := []string{"Mocha", "abc", "Centro", "cash"}

	sale, err := rm.MapRow(context.Background(), b, row)
	if err != nil {
		t.Fatalf("MapRow returned error: %v", err)
	}

	if sale.UnitPrice != 0 || sale.Quantity != 1 || sale.TotalAmount != 0 {
		t.Errorf("defaults = %v/%v/%v, want 0/1/0", sale.UnitPrice, sale.Quantity, sale.TotalAmount)
	}
	if !sale.SoldAt.Equal(clock) {
		t.Errorf("missing date should fall back to the clock, got %v", sale.SoldAt)
	}
	if sale.ClientID != nil {
		t.Errorf("expected anonymous sale, got client %v", *sale.ClientID)
	}
}

func TestMapRowMandatoryReferenceFailure(t *testing.T) {
	res := &fakeResolver{productErr: errors.New("boom")}
	rm := New(res)
	b := rm.Bind(testHeaders)
	row := []string{"2024-03-17", "Latte", "", "3.5", "1", "", "cash", "Centro"}

	_, err := rm.MapRow(context.Background(), b, row)
	if !errors.Is(err, salesdb.ErrMissingReference) {
		t.Errorf("error = %v, want ErrMissingReference", err)
	}
}

func TestDayPeriod(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, PeriodMorning},
		{11, PeriodMorning},
		{12, PeriodAfternoon},
		{17, PeriodAfternoon},
		{18, PeriodEvening},
		{23, PeriodEvening},
	}

	for _, tt := range tests {
		if got := DayPeriod(tt.hour); got != tt.want {
			t.Errorf("DayPeriod(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestDayPeriodBoundaryMinutes(t *testing.T) {
	// 17:59 is still Afternoon; the bucket is decided by the hour alone.
	res := &fakeResolver{}
	rm := New(res)
	b := rm.Bind(testHeaders)
	row := []string{"2024-03-17 17:59:00", "Latte", "", "1", "1", "", "cash", "Centro"}

	sale, err := rm.MapRow(context.Background(), b, row)
	if err != nil {
		t.Fatalf("MapRow returned error: %v", err)
	}
	if sale.DayPeriod != PeriodAfternoon {
		t.Errorf("17:59 mapped to %q, want Afternoon", sale.DayPeriod)
	}
}

func TestTotalIsExact(t *testing.T) {
	tests := []struct {
		price float64
		qty   int
		want  float64
	}{
		{3.5, 2, 7.0},
		{0, 1, 0},
		{1.1, 3, 3.3},
		{19.99, 5, 99.95},
	}

	for _, tt := range tests {
		if got := Total(tt.price, tt.qty); got != tt.want {
			t.Errorf("Total(%v, %d) = %v, want %v", tt.price, tt.qty, got, tt.want)
		}
	}
}

func TestLocaleOverride(t *testing.T) {
	locale := Locale{
		Weekdays: [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"},
		Months: [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
			"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
	}

	res := &fakeResolver{}
	rm := New(res, WithLocale(locale))
	b := rm.Bind(testHeaders)
	row := []string{"2024-03-17 09:00:00", "Latte", "", "1", "1", "", "cash", "Centro"}

	sale, err := rm.MapRow(context.Background(), b, row)
	if err != nil {
		t.Fatalf("MapRow returned error: %v", err)
	}
	if sale.WeekdayName != "Domingo" || sale.MonthName != "Marzo" {
		t.Errorf("locale names = %q/%q, want Domingo/Marzo", sale.WeekdayName, sale.MonthName)
	}
}

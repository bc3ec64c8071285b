package mapper

import "testing"

func TestBindPriorityOverHeaderOrder(t *testing.T) {
	// "precio" outranks "total": the Price column wins for FieldPrice even
	// though Total Amount appears first in the sheet.
	b := Bind([]string{"Total Amount", "Product", "Price"}, DefaultMatchers())

	row := []string{"7.00", "Latte", "3.50"}
	if got := b.Value(FieldPrice, row); got != "3.50" {
		t.Errorf("price = %q, want 3.50 (Price column outranks Total Amount)", got)
	}
}

func TestBindFallsBackToLowerRankedColumn(t *testing.T) {
	b := Bind([]string{"Total Amount", "Product", "Price"}, DefaultMatchers())

	// Price cell empty, so the Total Amount candidate supplies the value.
	row := []string{"7.00", "Latte", ""}
	if got := b.Value(FieldPrice, row); got != "7.00" {
		t.Errorf("price = %q, want 7.00 fallback", got)
	}
}

func TestBindCaseInsensitiveSubstring(t *testing.T) {
	headers := []string{"FECHA DE VENTA", "Nombre del Producto", "Forma de Pago", "SUCURSAL"}
	b := Bind(headers, DefaultMatchers())
	row := []string{"2024-01-05", "Latte", "tarjeta", "Centro"}

	tests := []struct {
		field Field
		want  string
	}{
		{FieldDate, "2024-01-05"},
		{FieldProduct, "Latte"},
		{FieldPayment, "tarjeta"},
		{FieldStore, "Centro"},
	}
	for _, tt := range tests {
		if got := b.Value(tt.field, row); got != tt.want {
			t.Errorf("field %d = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestBindUnmatchedField(t *testing.T) {
	b := Bind([]string{"Product", "Price"}, DefaultMatchers())

	if b.Bound(FieldClient) {
		t.Error("FieldClient should be unbound")
	}
	if got := b.Value(FieldClient, []string{"Latte", "3.50"}); got != "" {
		t.Errorf("unbound field = %q, want empty", got)
	}
}

func TestBindDedupesSharedColumn(t *testing.T) {
	// One header matching two substrings of the same field is recorded once.
	b := Bind([]string{"Payment Method"}, DefaultMatchers())

	if got := len(b.candidates[FieldPayment]); got != 1 {
		t.Errorf("payment candidates = %d, want 1", got)
	}
}

func TestValueRowShorterThanBinding(t *testing.T) {
	b := Bind([]string{"Product", "Price", "Store"}, DefaultMatchers())

	// Ragged row: the store column is missing entirely.
	row := []string{"Latte", "3.50"}
	if got := b.Value(FieldStore, row); got != "" {
		t.Errorf("store = %q, want empty for ragged row", got)
	}
}

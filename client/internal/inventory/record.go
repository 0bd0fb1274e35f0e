// Package inventory holds the record type the client works with and the
// pure helpers applied to it before it reaches the store or the screen.
package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the store table the client reads and writes.
const Kind = "inventory"

// Record is one stored item. ID is assigned by the store and is empty until
// the record has been inserted.
type Record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`

	// Expanded is display state only and is reset on every fetch.
	Expanded bool `json:"-"`
}

// Fields is the insert/update payload.
type Fields struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// MissingFieldError reports a form field left blank. Presence is checked for
// every field before any number is parsed.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidNumberError reports quantity or price text that does not parse.
// Text is the input as typed.
type InvalidNumberError struct {
	Field string
	Text  string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s must be a number, got %q", e.Field, e.Text)
}

// Filter keeps the records whose name contains term, ignoring case.
func Filter(records []Record, term string) []Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// ParseFields checks presence first, then numbers, in field order.
func ParseFields(name, quantity, price string) (Fields, error) {
	quantity = strings.TrimSpace(quantity)
	price = strings.TrimSpace(price)

	switch {
	case strings.TrimSpace(name) == "":
		return Fields{}, &MissingFieldError{Field: "name"}
	case quantity == "":
		return Fields{}, &MissingFieldError{Field: "quantity"}
	case price == "":
		return Fields{}, &MissingFieldError{Field: "price"}
	}

	qty, err := strconv.Atoi(quantity)
	if err != nil {
		return Fields{}, &InvalidNumberError{Field: "quantity", Text: quantity}
	}

	dec, err := decimal.NewFromString(price)
	if err != nil {
		return Fields{}, &InvalidNumberError{Field: "price", Text: price}
	}

	return Fields{
		Name:     name,
		Quantity: qty,
		Price:    dec.InexactFloat64(),
	}, nil
}

func FormatPrice(p float64) string {
	return "₱" + decimal.NewFromFloat(p).StringFixed(2)
}

// FormatQuantity and FormatAmount render numbers back into form text.
func FormatQuantity(q int) string {
	return strconv.Itoa(q)
}

func FormatAmount(p float64) string {
	return decimal.NewFromFloat(p).String()
}

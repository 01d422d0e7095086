package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Price is a fixed-point monetary amount stored as an integer number of
// cents. It marshals to a JSON string with exactly two decimal places
// ("12.50") and unmarshals from either a JSON string or a JSON number with
// at most two decimal places.
//
// Integer cents avoid float rounding on the persistence path; the database
// column is NUMERIC(8,2) and the repository layer converts through
// [Price.String] and [ParsePrice].
type Price int64

// ErrInvalidPrice is returned when a price value is negative, not a number,
// carries more than two decimal places, or exceeds [MaxPrice].
var ErrInvalidPrice = errors.New("price must be a non-negative number with at most 2 decimal places")

// MaxPrice is the largest representable amount, 999999.99. It matches the
// NUMERIC(8,2) database column: six integer digits plus two decimals.
const MaxPrice Price = 99_999_999

// maxPriceUnits bounds the whole part before it is multiplied into cents,
// so oversized input is rejected instead of overflowing.
const maxPriceUnits = int64(MaxPrice) / 100

// ParsePrice converts a decimal string such as "5", "5.2" or "5.25" into
// a Price. Returns [ErrInvalidPrice] on any malformed or out-of-range input.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidPrice
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 {
		return 0, ErrInvalidPrice
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxPriceUnits {
		return 0, ErrInvalidPrice
	}

	cents := int64(0)
	if frac != "" {
		// pad "5.2" to 20 cents
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidPrice
		}
	}

	return Price(units*100 + cents), nil
}

// String renders the price as a decimal string with two fractional digits.
// It implements the [fmt.Stringer] interface.
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON renders the price as a JSON string, e.g. "12.50".
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either a JSON string ("12.50") or a bare JSON number
// (12.5) with at most two decimal places.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return ErrInvalidPrice
		}
		s = unquoted
	}

	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

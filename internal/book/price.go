package book

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is an amount in cents.
type Price int64

// ParsePrice parses a decimal amount such as "12.5" or "99.99". More than
// two fractional digits is an error.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, ErrInvalidPrice
	}
	neg := strings.HasPrefix(whole, "-")
	if neg {
		whole = whole[1:]
	}
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return 0, ErrInvalidPrice
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, ErrInvalidPrice
	}
	var cents int64
	if hasFrac {
		for len(frac) < 2 {
			frac += "0"
		}
		c, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || c < 0 {
			return 0, ErrInvalidPrice
		}
		cents = c
	}
	if units > (math.MaxInt64-cents)/100 {
		return 0, ErrInvalidPrice
	}
	p := Price(units*100 + cents)
	if neg {
		p = -p
	}
	return p, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PriceFromFloat converts f, rejecting values that do not fit two decimals.
func PriceFromFloat(f float64) (Price, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > float64(math.MaxInt64)/100 {
		return 0, ErrInvalidPrice
	}
	cents := math.Round(f * 100)
	if math.Abs(f*100-cents) > 1e-6 {
		return 0, ErrInvalidPrice
	}
	return Price(cents), nil
}

// Positive reports whether p is greater than zero.
func (p Price) Positive() bool {
	return p > 0
}

// String renders p with exactly two decimals.
func (p Price) String() string {
	sign := ""
	c := int64(p)
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON writes p as a JSON number with two decimals.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal.
func (p *Price) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(data, `"`))
	if v, err := ParsePrice(raw); err == nil {
		*p = v
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ErrInvalidPrice
	}
	v, err := PriceFromFloat(f)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

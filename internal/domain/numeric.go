package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric holds a fact value. Anything that does not parse as a number is
// kept as zero and flagged Invalid instead of failing the read.
type Numeric struct {
	d       decimal.Decimal
	invalid bool
}

func NewNumeric(f float64) Numeric {
	return Numeric{d: decimal.NewFromFloat(f)}
}

// ParseNumeric coerces an arbitrary driver or JSON value.
func ParseNumeric(src any) Numeric {
	switch v := src.(type) {
	case nil:
		return Numeric{}
	case Numeric:
		return v
	case decimal.Decimal:
		return Numeric{d: v}
	case float64:
		return NewNumeric(v)
	case float32:
		return NewNumeric(float64(v))
	case int:
		return Numeric{d: decimal.NewFromInt(int64(v))}
	case int32:
		return Numeric{d: decimal.NewFromInt(int64(v))}
	case int64:
		return Numeric{d: decimal.NewFromInt(v)}
	case []byte:
		return parseNumericString(string(v))
	case string:
		return parseNumericString(v)
	}
	return Numeric{invalid: true}
}

func parseNumericString(s string) Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return Numeric{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numeric{invalid: true}
	}
	return Numeric{d: d}
}

func (n Numeric) Decimal() decimal.Decimal { return n.d }

func (n Numeric) Float64() float64 { return n.d.InexactFloat64() }

// Invalid reports whether the source value could not be read as a number.
func (n Numeric) Invalid() bool { return n.invalid }

func (n Numeric) String() string { return n.d.String() }

func (n *Numeric) Scan(src any) error {
	*n = ParseNumeric(src)
	return nil
}

func (n Numeric) Value() (driver.Value, error) {
	return n.d.String(), nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	return []byte(n.d.String()), nil
}

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Numeric{}
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			*n = Numeric{invalid: true}
			return nil
		}
		*n = parseNumericString(s)
		return nil
	}
	*n = parseNumericString(string(b))
	return nil
}

func (n Numeric) GoString() string {
	if n.invalid {
		return "Numeric(invalid)"
	}
	return fmt.Sprintf("Numeric(%s)", n.d.String())
}

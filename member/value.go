package member

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// Zero returns the default value stored in a field of type t when no
// initializer was supplied.
func Zero(t TypeInfo) any {
	switch t.Kind {
	case TypeBool:
		return false
	case TypeInt:
		return 0
	case TypeInt64:
		return int64(0)
	case TypeFloat64:
		return float64(0)
	case TypeString:
		return ""
	case TypeBytes:
		return []byte(nil)
	case TypeDecimal:
		return decimal.Zero
	case TypeTime:
		return time.Time{}
	default:
		return nil
	}
}

// Conform checks that v is assignable to a value of type t and returns the
// normalized representation. Untyped-looking widenings (int into an int64
// slot) are performed here so that stored values always carry the declared
// representation.
func Conform(t TypeInfo, v any) (any, error) {
	if v == nil {
		if t.Kind == TypeAny || t.Kind == TypeNamed || t.Kind == TypeBytes {
			return nil, nil
		}
		return nil, fmt.Errorf("nil is not assignable to %s", t)
	}
	switch t.Kind {
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeInt:
		if i, ok := v.(int); ok {
			return i, nil
		}
	case TypeInt64:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		}
	case TypeFloat64:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		}
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeBytes:
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	case TypeDecimal:
		switch d := v.(type) {
		case decimal.Decimal:
			return d, nil
		case int:
			return decimal.NewFromInt(int64(d)), nil
		case string:
			dec, err := decimal.NewFromString(d)
			if err != nil {
				return nil, fmt.Errorf("parse decimal %q: %w", d, err)
			}
			return dec, nil
		}
	case TypeTime:
		if ts, ok := v.(time.Time); ok {
			return ts, nil
		}
	case TypeAny, TypeNamed:
		return v, nil
	}
	return nil, fmt.Errorf("value of type %T is not assignable to %s", v, t)
}

// BoxedEqual compares two stored values the way a boxed Equals call would:
// structural equality including custom equality methods, with NaN equal to
// itself. This deliberately differs from the == operator for floating-point
// NaN and for types carrying their own Equal method.
func BoxedEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
		return x == y
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		return ok && x.Equal(y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	}
	if eq, ok := a.(interface{ Equal(other any) bool }); ok {
		return eq.Equal(b)
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

package literals

import (
	"database/sql/driver"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/bawdo/sqlbind/bindings"
	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Classify maps a bound Go value to its Value kind. Rules, first match wins:
//
//   - nil and nil pointers, maps, funcs, chans and interfaces: Null
//   - a Value: itself
//   - []byte and other byte slices or arrays: Text
//   - pgtype.Numeric, decimal.Decimal, *big.Int, *big.Float, *big.Rat: Decimal
//   - civil.Date, civil.DateTime: DateTime
//   - ulid.ULID: Text in its canonical string form
//   - driver.Valuer: the kind of the driver value it produces
//   - time.Time: DateTime
//   - collections (see bindings.IsCollection): List
//   - other pointers: the kind of the pointee
//   - built-in integer, float and bool types: Integer, Unsigned, Float, Boolean
//   - named integer types: Enum, or Unsigned when the value exceeds an int64
//   - anything else: Text, using fmt.Sprint
func Classify(v any) Value {
	if isNil(v) {
		return Null{}
	}

	switch x := v.(type) {
	case Value:
		return x
	case []byte:
		return Text(x)
	case pgtype.Numeric:
		return numericValue(x)
	case *pgtype.Numeric:
		return numericValue(*x)
	case decimal.Decimal:
		return Decimal(x.String())
	case decimal.NullDecimal:
		if !x.Valid {
			return Null{}
		}
		return Decimal(x.Decimal.String())
	case *big.Int:
		return Decimal(x.String())
	case *big.Float:
		return Decimal(x.Text('f', -1))
	case *big.Rat:
		if x.IsInt() {
			return Decimal(x.Num().String())
		}
		return Decimal(new(big.Float).SetRat(x).Text('f', -1))
	case civil.Date:
		return DateTime{Time: x.In(time.UTC)}
	case civil.DateTime:
		return DateTime{Time: x.In(time.UTC)}
	case ulid.ULID:
		// Its driver value is the 16 raw bytes.
		return Text(x.String())
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return Text(fmt.Sprint(v))
		}
		return Classify(dv)
	case time.Time:
		return DateTime{Time: x}
	}

	if bindings.IsCollection(v) {
		elems := bindings.Elements(v)
		list := make(List, len(elems))
		for i, e := range elems {
			list[i] = Classify(e)
		}
		return list
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return Classify(rv.Elem().Interface())
	}

	named := rv.Type().PkgPath() != ""
	switch rv.Kind() {
	case reflect.Bool:
		return Boolean(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if named {
			return Enum(rv.Int())
		}
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := rv.Uint(); named && u <= math.MaxInt64 {
			return Enum(int64(u))
		}
		return Unsigned(rv.Uint())
	case reflect.Float32:
		return Float{V: rv.Float(), BitSize: 32}
	case reflect.Float64:
		return Float{V: rv.Float(), BitSize: 64}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			for i := range b {
				b[i] = byte(rv.Index(i).Uint())
			}
			return Text(b)
		}
	}

	return Text(fmt.Sprint(v))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func numericValue(n pgtype.Numeric) Value {
	switch {
	case !n.Valid:
		return Null{}
	case n.NaN:
		return Decimal("NaN")
	case n.InfinityModifier == pgtype.Infinity:
		return Decimal("Infinity")
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return Decimal("-Infinity")
	}
	return Decimal(scaledDecimal(n.Int, n.Exp))
}

// scaledDecimal renders unscaled * 10^exp without an exponent.
func scaledDecimal(unscaled *big.Int, exp int32) string {
	if unscaled == nil {
		return "0"
	}
	digits := new(big.Int).Abs(unscaled).String()
	switch {
	case exp > 0:
		digits += strings.Repeat("0", int(exp))
	case exp < 0:
		scale := int(-exp)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if unscaled.Sign() < 0 {
		return "-" + digits
	}
	return digits
}

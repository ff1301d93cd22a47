package literals_test

import (
	"database/sql"
	"encoding/json"
	"math"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/bawdo/sqlbind/internal/testutil"
	"github.com/bawdo/sqlbind/literals"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type status int

type flag bool

type label string

type bits uint64

type digest [4]byte

type point struct{ X, Y int }

func (p point) String() string { return "point" }

func assertFormat(t *testing.T, v any, wantText string, wantQuoted bool) {
	t.Helper()
	text, quoted := literals.FormatValue(v)
	if text != wantText || quoted != wantQuoted {
		t.Errorf("FormatValue(%#v) = (%q, %v), want (%q, %v)", v, text, quoted, wantText, wantQuoted)
	}
}

// --- Null ---

func TestFormatNull(t *testing.T) {
	t.Parallel()
	var ptr *int
	var m map[string]int
	assertFormat(t, nil, "NULL", false)
	assertFormat(t, ptr, "NULL", false)
	assertFormat(t, m, "NULL", false)
	assertFormat(t, sql.NullString{}, "NULL", false)
	assertFormat(t, pgtype.Numeric{}, "NULL", false)
}

// --- Numbers ---

func TestFormatIntegers(t *testing.T) {
	t.Parallel()
	assertFormat(t, 42, "42", false)
	assertFormat(t, int8(-3), "-3", false)
	assertFormat(t, int64(-9000000000), "-9000000000", false)
	assertFormat(t, uint16(7), "7", false)
	assertFormat(t, uint64(18446744073709551615), "18446744073709551615", false)
}

func TestFormatFloats(t *testing.T) {
	t.Parallel()
	assertFormat(t, 3.14, "3.14", false)
	assertFormat(t, float32(0.1), "0.1", false)
	assertFormat(t, 1e20, "100000000000000000000", false)
	assertFormat(t, -0.5, "-0.5", false)
}

func TestFormatDecimals(t *testing.T) {
	t.Parallel()
	assertFormat(t, pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, "12.50", false)
	assertFormat(t, &pgtype.Numeric{Int: big.NewInt(-5), Exp: -3, Valid: true}, "-0.005", false)
	assertFormat(t, pgtype.Numeric{NaN: true, Valid: true}, "NaN", false)
	assertFormat(t, big.NewInt(123456789), "123456789", false)
	assertFormat(t, big.NewFloat(1.5), "1.5", false)
	assertFormat(t, big.NewRat(10, 2), "5", false)
	assertFormat(t, big.NewRat(1, 4), "0.25", false)
	assertFormat(t, decimal.RequireFromString("12.50"), "12.5", false)
	assertFormat(t, decimal.NewFromInt(-3), "-3", false)
	assertFormat(t, decimal.NullDecimal{}, "NULL", false)
	assertFormat(t, decimal.NewNullDecimal(decimal.RequireFromString("0.25")), "0.25", false)
}

func TestFormatPointerToNumber(t *testing.T) {
	t.Parallel()
	n := 9
	assertFormat(t, &n, "9", false)
}

// --- Dates ---

func TestFormatDateOnly(t *testing.T) {
	t.Parallel()
	assertFormat(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "2024-01-05", true)
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()
	assertFormat(t, time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC), "2024-01-05 13:45:00", true)
	assertFormat(t, time.Date(2024, 1, 5, 0, 0, 0, 1, time.UTC), "2024-01-05 00:00:00", true)
}

func TestFormatDateKeepsLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("UTC+2", 2*60*60)
	assertFormat(t, time.Date(2024, 1, 5, 7, 5, 9, 0, loc), "2024-01-05 07:05:09", true)
}

func TestFormatCivilTypes(t *testing.T) {
	t.Parallel()
	assertFormat(t, civil.Date{Year: 2024, Month: time.January, Day: 5}, "2024-01-05", true)
	dt := civil.DateTime{
		Date: civil.Date{Year: 2024, Month: time.January, Day: 5},
		Time: civil.Time{Hour: 13, Minute: 45},
	}
	assertFormat(t, dt, "2024-01-05 13:45:00", true)
}

func TestFormatValuerDates(t *testing.T) {
	t.Parallel()
	d := pgtype.Date{Time: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Valid: true}
	assertFormat(t, d, "2024-01-05", true)
	assertFormat(t, sql.NullTime{Time: time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC), Valid: true}, "2024-01-05 13:45:00", true)
	assertFormat(t, sql.NullTime{}, "NULL", false)
}

// --- Booleans and enums ---

func TestFormatBoolIsLowerCase(t *testing.T) {
	t.Parallel()
	assertFormat(t, true, "true", false)
	assertFormat(t, false, "false", false)
	assertFormat(t, flag(true), "true", false)
	assertFormat(t, sql.NullBool{Bool: false, Valid: true}, "false", false)
}

func TestFormatEnum(t *testing.T) {
	t.Parallel()
	assertFormat(t, status(2), "2", false)
	assertFormat(t, time.March, "3", false)
	assertFormat(t, bits(7), "7", false)
}

func TestFormatNamedUnsignedAboveInt64(t *testing.T) {
	t.Parallel()
	assertFormat(t, bits(math.MaxUint64), "18446744073709551615", false)
	assertFormat(t, bits(math.MaxInt64+1), "9223372036854775808", false)
	testutil.AssertEqual(t, literals.KindOf(literals.Classify(bits(math.MaxUint64))), "unsigned")
	testutil.AssertEqual(t, literals.KindOf(literals.Classify(bits(1))), "enum")
}

// --- Text ---

func TestFormatText(t *testing.T) {
	t.Parallel()
	assertFormat(t, "Alice", "Alice", true)
	assertFormat(t, "", "", true)
	assertFormat(t, label("vip"), "vip", true)
	assertFormat(t, []byte("raw"), "raw", true)
	assertFormat(t, point{1, 2}, "point", true)
	assertFormat(t, sql.NullString{String: "x", Valid: true}, "x", true)
}

func TestFormatNamedByteTypesAsText(t *testing.T) {
	t.Parallel()
	assertFormat(t, json.RawMessage(`{"a":1}`), `{"a":1}`, true)
	assertFormat(t, json.RawMessage{}, "", true)
	assertFormat(t, digest{'a', 'b', 'c', 'd'}, "abcd", true)
	assertFormat(t, [2]byte{'h', 'i'}, "hi", true)
}

func TestFormatTextDoesNotEscapeQuotes(t *testing.T) {
	t.Parallel()
	assertFormat(t, "O'Brien", "O'Brien", true)
	text, quoted := literals.FormatValue("O'Brien")
	testutil.AssertEqual(t, literals.Literal{Text: text, Quoted: quoted}.SQL(), "'O'Brien'")
}

func TestFormatUUIDIsSingleValue(t *testing.T) {
	t.Parallel()
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assertFormat(t, id, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", true)
}

func TestFormatULIDUsesCanonicalString(t *testing.T) {
	t.Parallel()
	id := ulid.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assertFormat(t, id, "01ARZ3NDEKTSV4RRFFQ69G5FAV", true)
}

// --- Collections ---

func TestFormatList(t *testing.T) {
	t.Parallel()
	assertFormat(t, []int{1, 2, 3}, "1,2,3", false)
	assertFormat(t, []any{1, "a", nil, true}, "1,'a',NULL,true", false)
	assertFormat(t, []any{[]int{1, 2}, 3}, "1,2,3", false)
	assertFormat(t, []string{}, "", false)
}

// --- Functions ---

func TestFormatNullif(t *testing.T) {
	t.Parallel()
	assertFormat(t, literals.Nullif(1, 0), "NULLIF(1, 0)", false)
	assertFormat(t, literals.Nullif("a", nil), "NULLIF('a', NULL)", false)
}

func TestFormatFunctionRejectsBadName(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for an invalid function name")
		}
	}()
	literals.FormatValue(literals.Function{Name: "NULLIF(1); DROP", Args: nil})
}

// --- Literal rendering ---

func TestLiteralSQL(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, literals.Bare("42").SQL(), "42")
	testutil.AssertEqual(t, literals.Quoted("abc").SQL(), "'abc'")
}

func TestFormatterWithEscaper(t *testing.T) {
	t.Parallel()
	f := literals.NewFormatter(literals.WithEscaper(func(s string) string {
		return strings.ReplaceAll(s, "'", "''")
	}))
	testutil.AssertEqual(t, f.Format("O'Brien").SQL(), "'O''Brien'")
	testutil.AssertEqual(t, f.Format(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)).SQL(), "'2024-01-05'")
	testutil.AssertEqual(t, f.Format([]any{"it's", 1}).SQL(), "'it''s',1")
}

func TestFormatIsIdempotent(t *testing.T) {
	t.Parallel()
	values := []any{nil, 1, 2.5, "x", true, status(1), []int{1, 2}, time.Date(2024, 1, 5, 13, 45, 0, 0, time.UTC)}
	for _, v := range values {
		t1, q1 := literals.FormatValue(v)
		t2, q2 := literals.FormatValue(v)
		if t1 != t2 || q1 != q2 {
			t.Errorf("FormatValue(%#v) not idempotent: (%q, %v) then (%q, %v)", v, t1, q1, t2, q2)
		}
	}
}

// --- Classification ---

func TestKindOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{[]int{1}, "list"},
		{1, "integer"},
		{uint(1), "unsigned"},
		{1.5, "float"},
		{big.NewInt(1), "decimal"},
		{time.Now(), "datetime"},
		{true, "boolean"},
		{status(1), "enum"},
		{"s", "text"},
		{literals.Nullif(1, 2), "function"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, literals.KindOf(literals.Classify(tt.v)), tt.want)
	}
}

func TestClassifyKeepsValues(t *testing.T) {
	t.Parallel()
	v := literals.Integer(7)
	testutil.AssertEqual(t, literals.Classify(v), literals.Value(v))
	list := literals.Classify([]any{1, "a"})
	l, ok := list.(literals.List)
	if !ok || len(l) != 2 {
		t.Fatalf("expected a two-element List, got %#v", list)
	}
	testutil.AssertEqual(t, l[0], literals.Value(literals.Integer(1)))
	testutil.AssertEqual(t, l[1], literals.Value(literals.Text("a")))
}

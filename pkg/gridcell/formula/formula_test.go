package formula

import (
	"errors"
	"testing"

	"github.com/ukaji3/gridcell-go/pkg/gridcell/address"
)

// storeResolver resolves labels from a map, with missing cells empty.
func storeResolver(t *testing.T, cells map[string]string) Resolver {
	t.Helper()
	store := make(map[address.CellAddress]string, len(cells))
	for label, raw := range cells {
		addr, err := address.ParseCellLabel(label)
		if err != nil {
			t.Fatalf("bad test label %q: %v", label, err)
		}
		store[addr] = raw
	}
	return ResolverFunc(func(addr address.CellAddress) string {
		return store[addr]
	})
}

func mustAddr(t *testing.T, label string) address.CellAddress {
	t.Helper()
	addr, err := address.ParseCellLabel(label)
	if err != nil {
		t.Fatalf("bad test label %q: %v", label, err)
	}
	return addr
}

func TestEvaluateLiteral(t *testing.T) {
	r := ResolverFunc(func(address.CellAddress) string {
		t.Fatal("literal evaluation must not resolve cells")
		return ""
	})

	for _, raw := range []string{"", "hello", "5", "A1", " =1+1", "1+1"} {
		result, err := Evaluate(raw, r)
		if err != nil {
			t.Errorf("Evaluate(%q) returned error: %v", raw, err)
			continue
		}
		if result != raw {
			t.Errorf("Evaluate(%q) = %q, expected it unchanged", raw, result)
		}
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	r := storeResolver(t, nil)
	tests := []struct {
		raw      string
		expected string
	}{
		{"=1+2", "3"},
		{"=1+2*3", "7"},
		{"=(1+2)*3", "9"},
		{"=10-4-3", "3"},
		{"=16/4/2", "2"},
		{"=10/4", "2.5"},
		{"=2^3", "8"},
		{"=2^3^2", "64"},
		{"=-2^2", "4"},
		{"=2*-3", "-6"},
		{"=-(1+2)", "-3"},
		{"=0*-1", "0"},
		{"=50%", "0.5"},
		{"=1/3", "0.3333333333333333"},
		{"=1.5+1.5", "3"},
		{"= 1 + 2 ", "3"},
		{"=1000000*1000000", "1000000000000"},
	}

	for _, tt := range tests {
		result, err := Evaluate(tt.raw, r)
		if err != nil {
			t.Errorf("Evaluate(%q) returned error: %v", tt.raw, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("Evaluate(%q) = %q, expected %q", tt.raw, result, tt.expected)
		}
	}
}

func TestEvaluateReferences(t *testing.T) {
	r := storeResolver(t, map[string]string{
		"A1": "5",
		"B1": "=A1*2",
		"A2": "2",
		"B2": "=A2+1",
		"C2": "=B2*3",
		"D1": " 7 ",
		"E1": "-1.5e1",
	})

	tests := []struct {
		raw      string
		expected string
	}{
		{"=A1*2", "10"},
		{"=a1*2", "10"},
		{"=$A$1*2", "10"},
		{"=B1", "10"},
		{"=C2", "9"},
		{"=A1+A1", "10"},
		{"=Z99+1", "1"},
		{"=D1", "7"},
		{"=E1", "-15"},
		{"=(A1+B1)/A2", "7.5"},
	}

	for _, tt := range tests {
		result, err := Evaluate(tt.raw, r)
		if err != nil {
			t.Errorf("Evaluate(%q) returned error: %v", tt.raw, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("Evaluate(%q) = %q, expected %q", tt.raw, result, tt.expected)
		}
	}
}

func TestEvaluateIsRepeatable(t *testing.T) {
	r := storeResolver(t, map[string]string{"A1": "2", "B1": "=A1+1", "C1": "=B1*3"})
	first, err := Evaluate("=C1", r)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Evaluate("=C1", r)
		if err != nil || again != first {
			t.Fatalf("Evaluate is not repeatable: %q, %v (first %q)", again, err, first)
		}
	}
}

func TestEvaluateCircularReference(t *testing.T) {
	r := storeResolver(t, map[string]string{
		"A1": "=B1",
		"B1": "=A1",
		"C1": "=C1+1",
		"D1": "=E1",
		"E1": "=F1",
		"F1": "=D1",
	})

	for _, raw := range []string{"=B1", "=A1", "=C1", "=D1*2"} {
		if _, err := Evaluate(raw, r); !errors.Is(err, ErrCircularReference) {
			t.Errorf("Evaluate(%q) error = %v, expected ErrCircularReference", raw, err)
		}
	}

	for _, label := range []string{"A1", "B1", "C1", "E1"} {
		_, err := EvaluateCell(mustAddr(t, label), r)
		if !errors.Is(err, ErrCircularReference) {
			t.Errorf("EvaluateCell(%s) error = %v, expected ErrCircularReference", label, err)
		}
	}
}

func TestEvaluateCellSelfReference(t *testing.T) {
	calls := 0
	r := ResolverFunc(func(addr address.CellAddress) string {
		calls++
		return "=A1"
	})

	_, err := EvaluateCell(address.CellAddress{}, r)
	if !errors.Is(err, ErrCircularReference) {
		t.Fatalf("EvaluateCell error = %v, expected ErrCircularReference", err)
	}
	if calls != 1 {
		t.Errorf("self reference resolved %d times, expected 1", calls)
	}

	var fe *Error
	if !errors.As(err, &fe) || fe.Cell != "A1" {
		t.Errorf("error = %v, expected it to name cell A1", err)
	}
}

func TestEvaluateCellLiteral(t *testing.T) {
	r := storeResolver(t, map[string]string{"B2": "hello", "C3": "=B4+1", "B4": "41"})

	result, err := EvaluateCell(mustAddr(t, "B2"), r)
	if err != nil || result != "hello" {
		t.Errorf("EvaluateCell(B2) = %q, %v, expected %q", result, err, "hello")
	}
	result, err = EvaluateCell(mustAddr(t, "C3"), r)
	if err != nil || result != "42" {
		t.Errorf("EvaluateCell(C3) = %q, %v, expected %q", result, err, "42")
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	r := storeResolver(t, map[string]string{"A1": "0", "B1": "=1/A1"})

	for _, raw := range []string{"=1/0", "=1/(2-2)", "=1/Z9", "=1/A1", "=B1+1"} {
		if _, err := Evaluate(raw, r); !errors.Is(err, ErrDivideByZero) {
			t.Errorf("Evaluate(%q) error = %v, expected ErrDivideByZero", raw, err)
		}
	}
}

func TestEvaluateParseError(t *testing.T) {
	r := storeResolver(t, map[string]string{"A1": "1"})

	for _, raw := range []string{
		"=",
		"=1+",
		"=*2",
		"=SUM(A1)",
		"=A1:B2",
		"=Sheet2!A1",
		"=foo",
		"=A0",
		`="text"`,
		"=TRUE",
		"=1&2",
		"=1<2",
	} {
		if _, err := Evaluate(raw, r); !errors.Is(err, ErrParse) {
			t.Errorf("Evaluate(%q) error = %v, expected ErrParse", raw, err)
		}
	}

	if _, err := Evaluate("=foo", r); !errors.Is(err, address.ErrMalformedLabel) {
		t.Errorf("Evaluate(%q) error = %v, expected it to wrap ErrMalformedLabel", "=foo", err)
	}
}

func TestEvaluateParseErrorInReferencedCell(t *testing.T) {
	r := storeResolver(t, map[string]string{"A1": "=1+", "B1": "=A1*2"})

	_, err := Evaluate("=B1", r)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("error = %v, expected ErrParse", err)
	}
	var fe *Error
	if !errors.As(err, &fe) || fe.Cell != "A1" {
		t.Errorf("error = %v, expected it to name cell A1", err)
	}
}

func TestEvaluateValueError(t *testing.T) {
	r := storeResolver(t, map[string]string{"A1": "hello", "B1": "0x10", "C1": "Inf"})

	for _, raw := range []string{"=A1+1", "=B1", "=C1", "=10^400"} {
		if _, err := Evaluate(raw, r); !errors.Is(err, ErrValue) {
			t.Errorf("Evaluate(%q) error = %v, expected ErrValue", raw, err)
		}
	}

	_, err := Evaluate("=A1+1", r)
	if got, want := err.Error(), `cell A1: value error: "hello" is not a number`; got != want {
		t.Errorf("error message = %q, expected %q", got, want)
	}
}

func TestReferences(t *testing.T) {
	refs, err := References("=A1+B2*A1-(C3/$B$2)")
	if err != nil {
		t.Fatalf("References returned error: %v", err)
	}
	expected := []string{"A1", "B2", "C3"}
	if len(refs) != len(expected) {
		t.Fatalf("References = %v, expected %v", refs, expected)
	}
	for i, ref := range refs {
		if ref.Label() != expected[i] {
			t.Errorf("References[%d] = %s, expected %s", i, ref, expected[i])
		}
	}

	if refs, err := References("plain text"); err != nil || refs != nil {
		t.Errorf("References(literal) = %v, %v, expected nil, nil", refs, err)
	}
	if _, err := References("=1+"); !errors.Is(err, ErrParse) {
		t.Errorf("References(%q) error = %v, expected ErrParse", "=1+", err)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{10, "10"},
		{-2.5, "-2.5"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1e21, "1000000000000000000000"},
	}

	for _, tt := range tests {
		if result := FormatNumber(tt.value); result != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, expected %q", tt.value, result, tt.expected)
		}
	}
}

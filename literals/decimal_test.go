package literals

import (
	"math/big"
	"testing"
)

func TestScaledDecimal(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		unscaled *big.Int
		exp      int32
		want     string
	}{
		{"nil", nil, 0, "0"},
		{"integer", big.NewInt(42), 0, "42"},
		{"positive exponent", big.NewInt(1), 2, "100"},
		{"two places", big.NewInt(1250), -2, "12.50"},
		{"leading zeros", big.NewInt(5), -3, "0.005"},
		{"exact scale", big.NewInt(25), -2, "0.25"},
		{"negative", big.NewInt(-1250), -2, "-12.50"},
		{"negative small", big.NewInt(-5), -3, "-0.005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scaledDecimal(tt.unscaled, tt.exp)
			if got != tt.want {
				t.Errorf("scaledDecimal(%v, %d) = %q, want %q", tt.unscaled, tt.exp, got, tt.want)
			}
		})
	}
}

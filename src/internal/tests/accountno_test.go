package services_test

import (
	"testing"

	"github.com/api-sage/core-banking-ledger/src/internal/accountno"
)

func TestGeneratorProducesDistinctFixedLengthNumbers(t *testing.T) {
	gen := accountno.NewGenerator(12)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		number := gen.Generate()
		if len(number) != 12 {
			t.Fatalf("expected 12-digit account number, got %q", number)
		}
		for _, ch := range number {
			if ch < '0' || ch > '9' {
				t.Fatalf("expected numeric account number, got %q", number)
			}
		}
		if _, dup := seen[number]; dup {
			t.Fatalf("generator returned duplicate %q", number)
		}
		seen[number] = struct{}{}
	}
}

func TestGeneratorDefaultsLength(t *testing.T) {
	gen := accountno.NewGenerator(0)
	if got := len(gen.Generate()); got != accountno.DefaultLength {
		t.Fatalf("expected default length %d, got %d", accountno.DefaultLength, got)
	}
}

func TestGeneratorReserveBlocksReissue(t *testing.T) {
	gen := accountno.NewGenerator(3)

	// Reserve the whole space except one value; the next draw must be it.
	for i := 0; i < 1000; i++ {
		if i == 357 {
			continue
		}
		gen.Reserve(formatThreeDigits(i))
	}

	if got := gen.Generate(); got != "357" {
		t.Fatalf("expected the only free number 357, got %q", got)
	}
}

func formatThreeDigits(n int) string {
	digits := []byte{'0', '0', '0'}
	for i := 2; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}

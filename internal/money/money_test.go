package money

import "testing"

func TestReflect(t *testing.T) {
	if got := Cents(45).Reflect(); got != 55 {
		t.Fatalf("Reflect(45) = %d, want 55", got)
	}
	if got := Cents(100).Reflect(); got != 0 {
		t.Fatalf("Reflect(100) = %d, want 0", got)
	}
	if !Inf.Reflect().IsInf() {
		t.Fatal("Reflect(Inf) must stay Inf")
	}
}

func TestDollars(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "0.00"},
		{7, "0.07"},
		{100, "1.00"},
		{155, "1.55"},
		{-42, "-0.42"},
		{Inf, "inf"},
	}
	for _, c := range cases {
		if got := c.in.Dollars(); got != c.want {
			t.Fatalf("Dollars(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKalshiFeeRoundsUp(t *testing.T) {
	// fee = ceil(0.07 * qty * P * (1-P)) dollars, in basis-cents.
	// qty=10, P=0.45: 0.07*10*0.45*0.55 = 0.17325 → 18 cents.
	if got := KalshiFee(10, 45); got != 18 {
		t.Fatalf("KalshiFee(10, 45) = %d, want 18", got)
	}
	// qty=1, P=0.50: 0.07*0.25 = 0.0175 → 2 cents.
	if got := KalshiFee(1, 50); got != 2 {
		t.Fatalf("KalshiFee(1, 50) = %d, want 2", got)
	}
	// An exact result must NOT round up further: qty=100, P=0.50 →
	// 0.07*100*0.25 = 1.75 dollars = 175 cents exactly.
	if got := KalshiFee(100, 50); got != 175 {
		t.Fatalf("KalshiFee(100, 50) = %d, want 175", got)
	}
}

func TestKalshiFeeDegenerate(t *testing.T) {
	if KalshiFee(0, 45) != 0 || KalshiFee(10, 0) != 0 || KalshiFee(10, 100) != 0 {
		t.Fatal("degenerate inputs must be free")
	}
}

func TestPolymarketFeeBpsPeaksAtMidpoint(t *testing.T) {
	if got := PolymarketFeeBps(50); got != 300 {
		t.Fatalf("fee at 50c = %d bps, want 300", got)
	}
	if got := PolymarketFeeBps(25); got != 150 {
		t.Fatalf("fee at 25c = %d bps, want 150", got)
	}
	if got := PolymarketFeeBps(99); got != 6 {
		t.Fatalf("fee at 99c = %d bps, want 6", got)
	}
	if PolymarketFeeBps(0) != 0 || PolymarketFeeBps(100) != 0 || PolymarketFeeBps(Inf) != 0 {
		t.Fatal("extremes must be free")
	}
}

func TestPolymarketFeeRoundsUp(t *testing.T) {
	// qty=10 at 49c, 294bps: notional 490 cents * 0.0294 = 14.406 → 15.
	if got := PolymarketFee(10, 49, 294); got != 15 {
		t.Fatalf("PolymarketFee = %d, want 15", got)
	}
	if got := PolymarketFee(10, 49, 0); got != 0 {
		t.Fatalf("zero-bps fee = %d, want 0", got)
	}
}

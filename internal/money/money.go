// Package money implements exact integer arithmetic for all monetary values
// in the engine. Prices and fees are represented in basis-cents (1 unit =
// $0.01); quantities are whole contracts. Binary floats never enter the
// arbitrage math — they are confined to the wire-parsing boundary in the
// venue adapters.
package money

import "math/big"

// Cents is a dollar amount in hundredths (1 = $0.01). Prices on both venues
// live on the same 0..100 scale (0.00 .. 1.00 in dollars).
type Cents int64

// Inf represents "no liquidity" — the synthetic-ask sentinel used whenever
// the opposing bid side is empty.
const Inf Cents = 1 << 32

// Quantity is a non-negative count of contracts.
type Quantity int64

// Reflect computes the 1.00-reflection identity used to derive a Kalshi
// synthetic ask from the opposing bid: Ask_Yes(px) = 1.00 - Bid_No(1.00-px).
func (c Cents) Reflect() Cents {
	if c == Inf {
		return Inf
	}
	return 100 - c
}

// IsInf reports whether c is the no-liquidity sentinel.
func (c Cents) IsInf() bool { return c == Inf }

// Dollars renders c as a decimal dollar string, e.g. Cents(155).Dollars() == "1.55".
func (c Cents) Dollars() string {
	if c.IsInf() {
		return "inf"
	}
	neg := c < 0
	if neg {
		c = -c
	}
	whole := int64(c) / 100
	frac := int64(c) % 100
	sign := ""
	if neg {
		sign = "-"
	}
	return sign + bigItoa(whole) + "." + pad2(frac)
}

func bigItoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + bigItoa(n)
	}
	return bigItoa(n)
}

// ceilRat rounds a non-negative rational up to the nearest integer.
func ceilRat(r *big.Rat) int64 {
	num := new(big.Int).Set(r.Num())
	den := r.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64()
}

// KalshiFee computes the Kalshi taker fee in basis-cents for a trade of qty
// contracts at price (in basis-cents, 0..100):
//
//	fee = ceil(0.07 * qty * P * (1-P))  dollars, P = price/100
//
// rounded up to the nearest basis-cent, using exact rational arithmetic so
// the round-up direction matches the Kalshi spec bit-for-bit.
func KalshiFee(qty Quantity, price Cents) Cents {
	if qty <= 0 || price <= 0 || price >= 100 {
		return 0
	}
	p := big.NewRat(int64(price), 100)
	oneMinusP := new(big.Rat).Sub(big.NewRat(1, 1), p)
	fee := new(big.Rat).Mul(big.NewRat(7, 100), big.NewRat(int64(qty), 1))
	fee.Mul(fee, p)
	fee.Mul(fee, oneMinusP)
	fee.Mul(fee, big.NewRat(100, 1)) // dollars -> basis-cents
	return Cents(ceilRat(fee))
}

// PolymarketFeeBps approximates the Polymarket dynamic taker fee schedule for
// short-duration crypto markets: fee peaks at 300bps when price sits at the
// $0.50 midpoint (maximum adverse-selection risk for the maker) and decays
// linearly to 0bps at the extremes, capped at the published 3% ceiling.
// The exact curve is not published; this approximation is documented as an
// open-question resolution in DESIGN.md.
func PolymarketFeeBps(price Cents) int64 {
	if price.IsInf() || price <= 0 || price >= 100 {
		return 0
	}
	dist := price - 50
	if dist < 0 {
		dist = -dist
	}
	bps := 300 - dist*6 // 300bps at 50c, 0bps at 0c/100c
	if bps < 0 {
		bps = 0
	}
	if bps > 300 {
		bps = 300
	}
	return int64(bps)
}

// PolymarketFee returns the Polymarket taker fee in basis-cents for a trade
// of qty contracts at price, given the fee rate in basis points (1/10000).
func PolymarketFee(qty Quantity, price Cents, feeBps int64) Cents {
	if qty <= 0 || feeBps <= 0 {
		return 0
	}
	notional := big.NewRat(int64(qty)*int64(price), 1) // basis-cents
	rate := big.NewRat(feeBps, 10000)
	fee := new(big.Rat).Mul(notional, rate)
	return Cents(ceilRat(fee))
}

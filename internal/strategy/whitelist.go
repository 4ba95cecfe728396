package strategy

// WhitelistEntry names two markets on different venues as referring to the
// same real-world resolution event — the only condition under which the
// Strategy engine considers a cross-platform pairing.
type WhitelistEntry struct {
	KalshiMarket string
	PolyMarket   string
}

// CrossVenueWhitelist is a static, configuration-seeded policy: the contents
// are external policy, not specified by the core.
// It is resolved here as an injectable set rather than a hard-coded list.
type CrossVenueWhitelist struct {
	byKalshi map[string][]string
	byPoly   map[string][]string
}

// NewCrossVenueWhitelist builds a whitelist index from the configured pairs.
func NewCrossVenueWhitelist(pairs []WhitelistEntry) *CrossVenueWhitelist {
	w := &CrossVenueWhitelist{
		byKalshi: make(map[string][]string),
		byPoly:   make(map[string][]string),
	}
	for _, p := range pairs {
		w.byKalshi[p.KalshiMarket] = append(w.byKalshi[p.KalshiMarket], p.PolyMarket)
		w.byPoly[p.PolyMarket] = append(w.byPoly[p.PolyMarket], p.KalshiMarket)
	}
	return w
}

// PartnersOfKalshi returns the Polymarket market IDs whitelisted as the
// resolution-equivalent counterpart of the given Kalshi market.
func (w *CrossVenueWhitelist) PartnersOfKalshi(marketID string) []string {
	if w == nil {
		return nil
	}
	return w.byKalshi[marketID]
}

// PartnersOfPoly returns the Kalshi market IDs whitelisted as the
// resolution-equivalent counterpart of the given Polymarket market.
func (w *CrossVenueWhitelist) PartnersOfPoly(marketID string) []string {
	if w == nil {
		return nil
	}
	return w.byPoly[marketID]
}

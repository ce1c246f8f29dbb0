package domain

// Currency ID constants - stable identifiers for the virtual currencies.
const (
	CurrencyTaikoTokens = "taiko_tokens"
)

// CurrencyIDs lists every currency in the game. The persistence schema is
// validated against this set at startup.
var CurrencyIDs = []string{CurrencyTaikoTokens}

// NoteHitsPerToken is how many note hits earn one taiko token by default.
// Upgrades can lower the effective requirement.
const NoteHitsPerToken = 50

// Balances maps currency IDs to non-negative amounts.
type Balances map[string]int

// NewBalances returns a zeroed balance set covering every currency.
func NewBalances() Balances {
	out := make(Balances, len(CurrencyIDs))
	for _, id := range CurrencyIDs {
		out[id] = 0
	}
	return out
}

// Clone returns an independent copy of the balance set.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for id, amount := range b {
		out[id] = amount
	}
	return out
}

package instruction

import (
	"github.com/shopspring/decimal"
)

// Amount is a decimal that marshals as a bare JSON number instead of the
// quoted string shopspring/decimal emits by default. The API contract
// exchanges balances and amounts as numbers.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount { return Amount{d} }

// AmountFromInt is a convenience constructor used mostly by tests.
func AmountFromInt(n int64) Amount { return Amount{decimal.NewFromInt(n)} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// Account is one balance record supplied by the caller for a single
// evaluation. The engine mutates Balance in place when an instruction
// executes immediately; ownership stays with the caller, which must treat
// the mutated record as the new authoritative balance.
type Account struct {
	ID       string `json:"id"`
	Balance  Amount `json:"balance"`
	Currency string `json:"currency"`
}

// accountIndex maps account ids to their records while remembering input
// positions, so response snapshots come out in the order the caller sent the
// accounts. Duplicate ids overwrite the record (last write wins) but keep the
// first occurrence's position.
type accountIndex struct {
	byID  map[string]*Account
	order map[string]int
}

func indexAccounts(accounts []*Account) accountIndex {
	idx := accountIndex{
		byID:  make(map[string]*Account, len(accounts)),
		order: make(map[string]int, len(accounts)),
	}
	for i, a := range accounts {
		if _, seen := idx.order[a.ID]; !seen {
			idx.order[a.ID] = i
		}
		idx.byID[a.ID] = a
	}
	return idx
}

func (idx accountIndex) lookup(id string) (*Account, bool) {
	a, ok := idx.byID[id]
	return a, ok
}

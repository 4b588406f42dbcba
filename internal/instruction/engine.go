package instruction

import (
	"fmt"
	"strings"
	"time"
)

// AccountSnapshot is one involved account's before/after view as included in
// the settlement result.
type AccountSnapshot struct {
	ID            string `json:"id"`
	Balance       Amount `json:"balance"`
	BalanceBefore Amount `json:"balance_before"`
	Currency      string `json:"currency"`
}

// Result is the outward-facing settlement record for one evaluation. Nilable
// fields marshal as null when the instruction never yielded them.
type Result struct {
	Type          *string           `json:"type"`
	Amount        *Amount           `json:"amount"`
	Currency      *string           `json:"currency"`
	DebitAccount  *string           `json:"debit_account"`
	CreditAccount *string           `json:"credit_account"`
	ExecuteBy     *string           `json:"execute_by"`
	Status        Status            `json:"status"`
	StatusCode    string            `json:"status_code"`
	StatusReason  string            `json:"status_reason"`
	Accounts      []AccountSnapshot `json:"accounts"`
}

// Evaluate parses, validates, and settles one instruction against the
// supplied account snapshot. Accounts are borrowed for the duration of the
// call and mutated in place only when the instruction executes immediately.
// A non-nil error means the input violated an upstream invariant that the
// schema validator should have caught; business failures never surface as
// errors, they come back as a failed Result.
func Evaluate(accounts []*Account, raw string, now time.Time) (Result, error) {
	for i, a := range accounts {
		if a == nil {
			return Result{}, fmt.Errorf("account at position %d is nil", i)
		}
	}

	ev := &evaluation{
		parsed: Parse(raw),
		index:  indexAccounts(accounts),
	}

	if verr := validate(ev); verr != nil {
		return assemble(ev, StatusFailed, verr.Code, verr.Message, snapshotPair(ev)), nil
	}

	if ev.parsed.ExecuteBy != nil && afterToday(*ev.parsed.ExecuteBy, now) {
		return assemble(ev, StatusPending, CodeScheduled, Reason(CodeScheduled), snapshotPair(ev)), nil
	}

	// Capture both balances before touching either account.
	snaps := snapshotPair(ev)

	ev.debit.Balance = Amount{ev.debit.Balance.Sub(ev.amount)}
	ev.credit.Balance = Amount{ev.credit.Balance.Add(ev.amount)}

	for i := range snaps {
		if snaps[i].ID == ev.debit.ID {
			snaps[i].Balance = ev.debit.Balance
		} else {
			snaps[i].Balance = ev.credit.Balance
		}
	}

	return assemble(ev, StatusSuccessful, CodeApproved, Reason(CodeApproved), snaps), nil
}

// snapshotPair returns before-mutation snapshots of the two involved
// accounts in their original input order, or an empty slice when the
// instruction failed before both accounts were resolved.
func snapshotPair(ev *evaluation) []AccountSnapshot {
	if ev.debit == nil || ev.credit == nil {
		return []AccountSnapshot{}
	}

	first, second := ev.debit, ev.credit
	if ev.index.order[second.ID] < ev.index.order[first.ID] {
		first, second = second, first
	}

	snaps := make([]AccountSnapshot, 0, 2)
	for _, a := range []*Account{first, second} {
		snaps = append(snaps, AccountSnapshot{
			ID:            a.ID,
			Balance:       a.Balance,
			BalanceBefore: a.Balance,
			Currency:      strings.ToUpper(a.Currency),
		})
	}
	return snaps
}

func assemble(ev *evaluation, status Status, code, reason string, snaps []AccountSnapshot) Result {
	res := Result{
		Type:          normalizedType(ev.parsed.Type),
		Currency:      ev.parsed.Currency,
		DebitAccount:  ev.parsed.DebitAccount,
		CreditAccount: ev.parsed.CreditAccount,
		ExecuteBy:     ev.parsed.ExecuteBy,
		Status:        status,
		StatusCode:    code,
		StatusReason:  reason,
		Accounts:      snaps,
	}
	if ev.amountOK {
		res.Amount = &Amount{ev.amount}
	}
	return res
}

func normalizedType(t *string) *string {
	if t == nil {
		return nil
	}
	up := strings.ToUpper(*t)
	return &up
}

// afterToday reports whether the already-validated YYYY-MM-DD date lands
// strictly after now's UTC calendar date. Comparison is at day granularity:
// an execute_by of today executes immediately regardless of time of day.
func afterToday(date string, now time.Time) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.After(today)
}

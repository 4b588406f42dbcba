package instruction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SupportedCurrencies is the set of currencies an instruction may settle in,
// matched case-insensitively.
var SupportedCurrencies = map[string]bool{
	"USD": true,
	"NGN": true,
	"GBP": true,
	"GHS": true,
}

// evaluation carries the intermediate state of one validation pass: the
// parsed fields, the caller's account snapshot, and whatever later checks
// have resolved so far.
type evaluation struct {
	parsed   ParsedInstruction
	index    accountIndex
	amount   decimal.Decimal
	amountOK bool
	debit    *Account
	credit   *Account
}

// checks run in order and the first failure wins. The order is a published
// precedence contract among simultaneously-true failure conditions and must
// not be rearranged.
var checks = []func(*evaluation) *ValidationError{
	checkType,
	checkAmountNumeric,
	checkAmountWhole,
	checkAmountPositive,
	checkCurrencySupported,
	checkAccountIDs,
	checkAccountsExist,
	checkDistinctAccounts,
	checkCurrenciesMatch,
	checkKeyword,
	checkSufficientFunds,
	checkExecuteBy,
}

func validate(ev *evaluation) *ValidationError {
	for _, check := range checks {
		if verr := check(ev); verr != nil {
			return verr
		}
	}
	return nil
}

func checkType(ev *evaluation) *ValidationError {
	if ev.parsed.Type == nil {
		return failCode(CodeMalformed)
	}
	return nil
}

func checkAmountNumeric(ev *evaluation) *ValidationError {
	if ev.parsed.Amount == nil {
		return failCode(CodeInvalidAmount)
	}
	d, err := decimal.NewFromString(*ev.parsed.Amount)
	if err != nil {
		return failCode(CodeInvalidAmount)
	}
	ev.amount = d
	ev.amountOK = true
	return nil
}

// Fractional amounts are rejected outright, never rounded.
func checkAmountWhole(ev *evaluation) *ValidationError {
	if strings.Contains(*ev.parsed.Amount, ".") {
		return failCode(CodeInvalidAmount)
	}
	return nil
}

func checkAmountPositive(ev *evaluation) *ValidationError {
	if ev.amount.Sign() <= 0 {
		return failCode(CodeInvalidAmount)
	}
	return nil
}

func checkCurrencySupported(ev *evaluation) *ValidationError {
	if ev.parsed.Currency == nil || !SupportedCurrencies[strings.ToUpper(*ev.parsed.Currency)] {
		return failCode(CodeUnsupportedCurrency)
	}
	return nil
}

func checkAccountIDs(ev *evaluation) *ValidationError {
	if ev.parsed.DebitAccount == nil || !ValidAccountID(*ev.parsed.DebitAccount) {
		return failCode(CodeInvalidAccountID)
	}
	if ev.parsed.CreditAccount == nil || !ValidAccountID(*ev.parsed.CreditAccount) {
		return failCode(CodeInvalidAccountID)
	}
	return nil
}

func checkAccountsExist(ev *evaluation) *ValidationError {
	debit, ok := ev.index.lookup(*ev.parsed.DebitAccount)
	if !ok {
		return failCode(CodeAccountNotFound)
	}
	credit, ok := ev.index.lookup(*ev.parsed.CreditAccount)
	if !ok {
		return failCode(CodeAccountNotFound)
	}
	ev.debit, ev.credit = debit, credit
	return nil
}

// Account ids are case-sensitive, so the comparison is exact.
func checkDistinctAccounts(ev *evaluation) *ValidationError {
	if *ev.parsed.DebitAccount == *ev.parsed.CreditAccount {
		return failCode(CodeSameAccount)
	}
	return nil
}

func checkCurrenciesMatch(ev *evaluation) *ValidationError {
	if !strings.EqualFold(ev.debit.Currency, ev.credit.Currency) {
		return failCode(CodeCurrencyMismatch)
	}
	return nil
}

// checkKeyword cannot currently fire: the mapper only produces "credit" or
// "debit" for non-nil types. Kept as a guard so the precedence contract
// stays intact if another keyword is ever added to the position table.
func checkKeyword(ev *evaluation) *ValidationError {
	if t := *ev.parsed.Type; t != TypeCredit && t != TypeDebit {
		return failCode(CodeMissingKeyword)
	}
	return nil
}

// Only debit instructions require cover in the source account; a credit may
// drive the source balance negative.
func checkSufficientFunds(ev *evaluation) *ValidationError {
	if *ev.parsed.Type == TypeDebit && ev.debit.Balance.LessThan(ev.amount) {
		return failCode(CodeInsufficientFunds)
	}
	return nil
}

func checkExecuteBy(ev *evaluation) *ValidationError {
	if ev.parsed.ExecuteBy != nil && !ValidDate(*ev.parsed.ExecuteBy) {
		return failCode(CodeInvalidDate)
	}
	return nil
}

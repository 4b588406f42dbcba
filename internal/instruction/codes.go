package instruction

// Status is the terminal outcome of one evaluation. Exactly one holds per
// evaluation; there is never a transition between them within one call.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusPending    Status = "pending"
	StatusFailed     Status = "failed"
)

// Status codes are stable identifiers intended for client branching logic,
// independent of their human-readable reasons.
const (
	CodeApproved            = "AP00" // executed immediately
	CodeScheduled           = "AP02" // accepted, deferred until execute_by
	CodeMalformed           = "PR01"
	CodeInvalidAmount       = "AM01"
	CodeUnsupportedCurrency = "CU02"
	CodeInvalidAccountID    = "AC04"
	CodeAccountNotFound     = "AC03"
	CodeSameAccount         = "AC02"
	CodeCurrencyMismatch    = "CU01"
	CodeMissingKeyword      = "SY03"
	CodeInsufficientFunds   = "AC01"
	CodeInvalidDate         = "DT01"
)

// StatusReasons maps each status code to its human-readable reason text.
var StatusReasons = map[string]string{
	CodeApproved:            "Transaction executed successfully",
	CodeScheduled:           "Transaction accepted and scheduled for execution",
	CodeMalformed:           "Instruction could not be parsed",
	CodeInvalidAmount:       "Amount must be a positive whole number",
	CodeUnsupportedCurrency: "Currency is not supported",
	CodeInvalidAccountID:    "Account identifier contains invalid characters",
	CodeAccountNotFound:     "Account not found",
	CodeSameAccount:         "Debit and credit accounts must differ",
	CodeCurrencyMismatch:    "Accounts are held in different currencies",
	CodeMissingKeyword:      "Instruction keyword is missing",
	CodeInsufficientFunds:   "Insufficient funds in debit account",
	CodeInvalidDate:         "Execution date is not a valid calendar date",
}

// Reason resolves a status code against the catalog, falling back to a
// generic message for unknown codes.
func Reason(code string) string {
	if msg, ok := StatusReasons[code]; ok {
		return msg
	}
	return "Transaction failed"
}

// ValidationError is a business-rule failure modeled as data, never thrown.
// At most one is produced per evaluation.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func failCode(code string) *ValidationError {
	return &ValidationError{Code: code, Message: Reason(code)}
}

package instruction

import "strings"

// Instruction type keywords recognized at token 0, matched case-insensitively.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// fieldPositions maps each instruction type to the token index of every
// named field. The two types share one grammar but swap which account slot
// is the source and which the destination, so the table, not the parsing
// code, carries the semantic difference. Unlisted indices are placeholder
// tokens reserved for fields this service does not model.
var fieldPositions = map[string]map[string]int{
	TypeCredit: {
		"amount":         1,
		"currency":       2,
		"credit_account": 5,
		"debit_account":  10,
		"execute_by":     12,
	},
	TypeDebit: {
		"amount":         1,
		"currency":       2,
		"debit_account":  5,
		"credit_account": 10,
		"execute_by":     12,
	},
}

// ParsedInstruction holds the raw fields extracted from one instruction
// line. A nil field means the token at its position was absent. It lives
// only for the duration of one evaluation and is never persisted.
type ParsedInstruction struct {
	Type          *string
	Amount        *string
	Currency      *string
	DebitAccount  *string
	CreditAccount *string
	ExecuteBy     *string
}

// Tokenize splits an instruction line into its non-empty whitespace-separated
// tokens. Leading and trailing whitespace is dropped and runs of spaces
// collapse; there are no error conditions.
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

// Parse tokenizes raw and maps tokens to named fields using the positional
// table for the instruction type at token 0. An unrecognized or missing
// keyword yields a ParsedInstruction with a nil Type and all fields nil,
// which the validation chain reports as a malformed instruction. The
// currency field is upper-cased; all other fields pass through verbatim.
func Parse(raw string) ParsedInstruction {
	tokens := Tokenize(raw)

	var kind string
	if len(tokens) > 0 {
		kind = strings.ToLower(tokens[0])
	}

	positions, ok := fieldPositions[kind]
	if !ok {
		return ParsedInstruction{}
	}

	at := func(i int) *string {
		if i >= len(tokens) {
			return nil
		}
		tok := tokens[i]
		return &tok
	}

	parsed := ParsedInstruction{
		Type:          &kind,
		Amount:        at(positions["amount"]),
		Currency:      at(positions["currency"]),
		DebitAccount:  at(positions["debit_account"]),
		CreditAccount: at(positions["credit_account"]),
		ExecuteBy:     at(positions["execute_by"]),
	}

	if parsed.Currency != nil {
		up := strings.ToUpper(*parsed.Currency)
		parsed.Currency = &up
	}

	return parsed
}

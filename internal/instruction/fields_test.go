package instruction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountID(t *testing.T) {
	valid := []string{"ACC1", "acc-1", "user.name@bank", "0001", "a", "A-b.C@9"}
	for _, id := range valid {
		assert.True(t, ValidAccountID(id), "id=%q", id)
	}

	invalid := []string{"", "acc 1", "acc_1", "acc#1", "acc/1", "ärger", "acc+1"}
	for _, id := range invalid {
		assert.False(t, ValidAccountID(id), "id=%q", id)
	}
}

func TestValidDate(t *testing.T) {
	cases := []struct {
		date string
		ok   bool
	}{
		{"2024-02-29", true},  // leap year, divisible by 4 not 100
		{"2023-02-29", false}, // not a leap year
		{"2000-02-29", true},  // divisible by 400
		{"1900-02-29", false}, // divisible by 100 but not 400
		{"2024-12-31", true},
		{"2024-04-31", false},
		{"2024-06-30", true},
		{"2024-01-01", true},
		{"2024-00-10", false},
		{"2024-13-01", false},
		{"2024-01-00", false},
		{"2024-01-32", false},
		{"0999-01-01", false}, // year below 1000
		{"9999-12-31", true},
		{"2024-1-01", false},  // not ten characters
		{"2024/01/01", false}, // wrong separators
		{"2024-01-0a", false},
		{"20240101", false},
		{"2024-01-015", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidDate(tc.date), "date=%q", tc.date)
	}
}

package instruction

// ValidAccountID reports whether id is a non-empty string composed only of
// ASCII letters, digits, hyphen, period, and at-sign.
func ValidAccountID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == '@':
		default:
			return false
		}
	}
	return true
}

// ValidDate reports whether s is a calendar-valid YYYY-MM-DD date: exactly
// ten characters, dashes at positions 4 and 7, digits elsewhere, year in
// [1000,9999], month in [1,12], and day within the month's length with
// February extended to 29 in leap years. No lenient parsing.
func ValidDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 4 || i == 7 {
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	year := digits(s[0:4])
	month := digits(s[5:7])
	day := digits(s[8:10])

	if year < 1000 || year > 9999 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(year, month)
}

// digits converts a pre-verified all-digit string to an int.
func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

package domain

import "strconv"

// SanitizeAmount turns free-form amount input into a whole currency amount:
// non-digit runes are stripped, the remainder is parsed. Empty or unparsable
// input yields 0, which blocks submission upstream.
func SanitizeAmount(raw string) int {
	digits := make([]rune, 0, len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return 0
	}

	amount, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return amount
}

package utils

import "strconv"

// FormatCOP formats an integer COP amount as "$95.000", using dot as the
// thousands separator (Colombian convention).
func FormatCOP(amount int64) string {
	prefix := "$"
	if amount < 0 {
		prefix = "-$"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Group digits in threes from the right
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := prefix + groups[0]
	for _, g := range groups[1:] {
		out += "." + g
	}
	return out
}

package jobs

import (
	"regexp"
	"strconv"
	"strings"
)

// Salary text is free-form: "£55,000 - £70,000 a year", "Competitive",
// "Up to £90k + bonus". Two patterns cover the common cases: a
// currency-prefixed amount, then any bare 2–6 digit run.
var (
	currencyAmountRe = regexp.MustCompile(`[£$€]([\d,]+)`)
	digitRunRe       = regexp.MustCompile(`\d{2,6}`)
)

// ParseSalaryAmount extracts a best-effort integer salary from free text.
// Returns 0 when nothing numeric can be found. Never errors: ranges, prose,
// and mixed formats all degrade to the first plausible number.
func ParseSalaryAmount(text string) int {
	if text == "" {
		return 0
	}

	compact := strings.ReplaceAll(text, " ", "")
	if m := currencyAmountRe.FindStringSubmatch(compact); len(m) > 1 {
		if n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return n
		}
	}

	if m := digitRunRe.FindString(strings.ReplaceAll(text, ",", "")); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}

	return 0
}

package statement

import (
	"math"
	"strconv"
	"strings"
)

// parseAmount parses a statement amount into minor currency units.
// Handles plain decimals ("450.00" -> 45000), thousands separators
// ("1,234.56" -> 123456) and leading signs. Indian-style grouping
// ("1,23,456.00") works too since commas are stripped outright.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, err
	}

	return int64(math.Round(val * 100)), nil
}

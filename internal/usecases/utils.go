package usecases

import (
	"strconv"
	"strings"
	"time"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// ParseCoordinates parses a "x,y" square reference. Returns false for
// anything that is not two comma-separated non-negative integers.
func ParseCoordinates(ref string) (int, int, bool) {
	parts := strings.Split(ref, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || x < 0 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || y < 0 {
		return 0, 0, false
	}
	return x, y, true
}

// OrdinalSuffix renders 1 -> "1st", 2 -> "2nd", 11 -> "11th", etc.
func OrdinalSuffix(n int) string {
	s := strconv.Itoa(n)
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return s + "th"
	case n%10 == 1:
		return s + "st"
	case n%10 == 2:
		return s + "nd"
	case n%10 == 3:
		return s + "rd"
	default:
		return s + "th"
	}
}

// containsFold reports case-insensitive substring containment, the match
// rule for every autocomplete field.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

package dates

import "strings"

var months = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthIndex = buildMonthIndex()

func buildMonthIndex() map[string]int {
	index := make(map[string]int, len(months)*2+1)
	for i, name := range months {
		index[strings.ToLower(name)] = i + 1
		index[strings.ToLower(name[:3])] = i + 1
	}
	index["sept"] = 9
	return index
}

// MonthIndex returns 1-12 for a full or abbreviated English month name, or 0.
func MonthIndex(name string) int {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	return monthIndex[key]
}

// MonthName returns the full month name for 1-12, or "" otherwise.
func MonthName(index int) string {
	if index < 1 || index > len(months) {
		return ""
	}
	return months[index-1]
}

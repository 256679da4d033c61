package roster

import (
	"fmt"
	"time"
)

// monthsGenitive maps months to the Russian genitive forms used in
// user-facing dates ("14 июня").
var monthsGenitive = map[time.Month]string{
	time.January:   "января",
	time.February:  "февраля",
	time.March:     "марта",
	time.April:     "апреля",
	time.May:       "мая",
	time.June:      "июня",
	time.July:      "июля",
	time.August:    "августа",
	time.September: "сентября",
	time.October:   "октября",
	time.November:  "ноября",
	time.December:  "декабря",
}

// FormatDate renders a date the way messages show it: day number plus the
// Russian genitive month name.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthsGenitive[t.Month()])
}

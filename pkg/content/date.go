package content

import (
	"fmt"
	"strings"
	"time"
)

// Month name tables for long-form dates. Unknown locales fall back to
// English.
var (
	monthsDE = [12]string{
		"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember",
	}
	monthsEN = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// FormatLongDate formats t as a long date (day, full month name, year) for
// the given locale. German locales use "2. Januar 2026" ordering; everything
// else uses "January 2, 2026".
func FormatLongDate(t time.Time, locale string) string {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	month := int(t.Month()) - 1
	if lang == "de" {
		return fmt.Sprintf("%d. %s %d", t.Day(), monthsDE[month], t.Year())
	}
	return fmt.Sprintf("%s %d, %d", monthsEN[month], t.Day(), t.Year())
}

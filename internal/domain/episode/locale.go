package episode

import (
	"fmt"
	"time"
)

// pt-BR names, lower case as the site displays them.
var (
	monthsAbbreviated = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
	monthsWide        = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}
	weekdaysShort     = [...]string{"dom", "seg", "ter", "qua", "qui", "sex", "sáb"}
)

// FormatPublished formats t as "d MMM yy" in pt-BR, e.g. "9 out 26".
func FormatPublished(t time.Time) string {
	return fmt.Sprintf("%d %s %02d", t.Day(), monthsAbbreviated[t.Month()-1], t.Year()%100)
}

// FormatHeaderDate formats t as "EEEEEE, d MMMM" in pt-BR, e.g. "seg, 19 outubro".
func FormatHeaderDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s", weekdaysShort[t.Weekday()], t.Day(), monthsWide[t.Month()-1])
}

package ptime

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ISOLayout is the machine timestamp layout: date, time and numeric offset.
const ISOLayout = time.RFC3339

var monthNames = [13]string{
	"",
	"janeiro",
	"fevereiro",
	"março",
	"abril",
	"maio",
	"junho",
	"julho",
	"agosto",
	"setembro",
	"outubro",
	"novembro",
	"dezembro",
}

// FormatReadable renders t in its own location as
// "<weekday>, <day> de <month> às <HH:mm>", e.g. "terça-feira, 11 de junho às 15:00".
func FormatReadable(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s às %s",
		WeekdayOf(t), t.Day(), monthNames[t.Month()], t.Format("15:04"))
}

// FormatBrazilianDateTime re-renders an ISO timestamp produced by the composer.
// The offset in the timestamp keeps the wall clock of the original zone.
func FormatBrazilianDateTime(iso string) (string, error) {
	t, err := time.Parse(ISOLayout, iso)
	if err != nil {
		return "", errors.Wrapf(err, "invalid timestamp %q", iso)
	}
	return FormatReadable(t), nil
}

package ptime

import "time"

// Weekday is an ISO-8601 day of the week: Monday=1 through Sunday=7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// forwardDays[from][to] is the signed distance in days from one weekday to
// another inside the same Monday-based week (-6..6).
var forwardDays [8][8]int

func init() {
	for from := Monday; from <= Sunday; from++ {
		for to := Monday; to <= Sunday; to++ {
			forwardDays[from][to] = int(to) - int(from)
		}
	}
}

var weekdayNames = [8]string{
	"",
	"segunda-feira",
	"terça-feira",
	"quarta-feira",
	"quinta-feira",
	"sexta-feira",
	"sábado",
	"domingo",
}

// WeekdayOf returns the ISO weekday of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return Weekday(t.Weekday())
}

// Valid reports whether w is in 1..7.
func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// Std converts w to the standard library weekday.
func (w Weekday) Std() time.Weekday {
	return time.Weekday(int(w) % 7)
}

// DaysUntil returns the signed same-week distance from w to target.
// Zero or negative means target is today or already past this week.
func (w Weekday) DaysUntil(target Weekday) int {
	if !w.Valid() || !target.Valid() {
		return 0
	}
	return forwardDays[w][target]
}

// String returns the Portuguese name of the weekday.
func (w Weekday) String() string {
	if !w.Valid() {
		return ""
	}
	return weekdayNames[w]
}

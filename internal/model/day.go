package model

import (
	"time"
)

// Day is a calendar day counted from the Unix epoch (UTC). Goal dates are
// whole days, not timestamps.
type Day int64

const secondsPerDay = 24 * 60 * 60

func DayOf(t time.Time) Day {
	return Day(t.UTC().Unix() / secondsPerDay)
}

func Today() Day {
	return DayOf(time.Now())
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

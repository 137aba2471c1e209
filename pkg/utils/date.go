package utils

import (
	"time"
)

// TimeNowIn returns the current time in the named location, falling back to UTC.
func TimeNowIn(location string) time.Time {
	loc, err := time.LoadLocation(location)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}

// PrettyDate formats t as dd/mm/yyyy hh:mm.
func PrettyDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

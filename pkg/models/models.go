package models

import "time"

// UserRecord represents the demo user every fetch endpoint returns. It is
// built once from configuration at startup and stays read-only for the
// lifetime of the process.
type UserRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// isoMillis is the wire format for every timestamp the lab emits:
// ISO-8601 UTC with millisecond precision, e.g. 2024-02-09T18:04:05.123Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Timestamp returns the current time in the lab's wire format.
func Timestamp() string {
	return time.Now().UTC().Format(isoMillis)
}

package db

// Timestamps are stored as sqlite-native TEXT so date() filters work the
// same regardless of driver time encoding.
const (
	TimeFormat = "2006-01-02 15:04:05"
	DateFormat = "2006-01-02"
)

package service

import "time"

// LogFilter narrows the notification journal by time range and severity.
type LogFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Severity string    // "", "info", "success", "error"
}

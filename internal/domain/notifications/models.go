package notifications

import "time"

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Type      string    `json:"type"`
}

type TaskEmail struct {
	To              string
	Name            string
	TaskTitle       string
	TaskDescription string
}

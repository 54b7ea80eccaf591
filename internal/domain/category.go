package domain

import "time"

// Category groups jerseys. The ID is a stable slug such as "football".
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	JerseyCount *int      `json:"jerseyCount,omitempty"`
	Jerseys     []Jersey  `json:"jerseys,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

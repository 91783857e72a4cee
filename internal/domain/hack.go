package domain

import "time"

// Hack is a competition entry. ID is assigned by the bulk importer and never
// reused.
type Hack struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	DevpostURL string    `json:"devpostUrl"`
	Categories []string  `json:"categories"`
	Floor      *int      `json:"floor,omitempty"`
	Table      *string   `json:"table,omitempty"`
	Disabled   bool      `json:"disabled"`
	NumSkips   int       `json:"numSkips"`
	CreatedAt  time.Time `json:"createdAt"`
}

package domain

import "time"

// AdminSession is the marker stored when someone signs in to the admin area.
type AdminSession struct {
	UserID        string    `json:"userId"`
	Role          string    `json:"role"`
	Authenticated bool      `json:"authenticated"`
	At            time.Time `json:"at"`
}

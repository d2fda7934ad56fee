package domain

import "time"

type Room struct {
	ID        string
	Name      string
	Capacity  int
	CreatedAt time.Time
}

package entities

import "time"

type Tag struct {
	ID        string
	GuildID   string
	OwnerID   string
	Name      string
	Content   string
	CreatedAt time.Time
}

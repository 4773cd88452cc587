package model

import "time"

// Project groups a user's songs, typically one per competition or show.
type Project struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectRequest creates or renames a project
type ProjectRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

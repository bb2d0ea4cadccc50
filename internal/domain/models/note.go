package models

import (
	"time"
)

type Note struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	FolderID   int64     `json:"folder_id" db:"folder_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	ModifiedAt time.Time `json:"modified_at" db:"modified_at"`
}

// NoteSearchResult is a note matched by a search, with the name of its folder.
type NoteSearchResult struct {
	Note
	FolderName string `json:"folder_name"`
}

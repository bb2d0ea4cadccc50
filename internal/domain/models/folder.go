package models

import (
	"time"
)

// DefaultFolderName is the name of the permanent root folder that absorbs
// notes orphaned by folder deletion.
const DefaultFolderName = "General"

type Folder struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *int64    `json:"parent_id" db:"parent_id"` // NULL = root level
	Path      string    `json:"path" db:"path"`           // Materialized: parent.Path + "/" + Name
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot reports whether the folder sits at the top level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// IsChildOf reports whether the folder's parent is parentID (nil = root level).
func (f *Folder) IsChildOf(parentID *int64) bool {
	if f.ParentID == nil || parentID == nil {
		return f.ParentID == nil && parentID == nil
	}
	return *f.ParentID == *parentID
}

// FolderDepth pairs a folder with its depth in a pre-order traversal (root = 0).
type FolderDepth struct {
	Folder Folder `json:"folder" yaml:"folder"`
	Depth  int    `json:"depth" yaml:"depth"`
}

// FolderTreeNode represents a folder in the nested hierarchy view
type FolderTreeNode struct {
	ID        int64             `json:"id" yaml:"id"`
	Name      string            `json:"name" yaml:"name"`
	ParentID  *int64            `json:"parent_id" yaml:"parent_id,omitempty"`
	Path      string            `json:"path" yaml:"path"`
	NoteCount int64             `json:"note_count" yaml:"note_count"`
	Folders   []*FolderTreeNode `json:"folders" yaml:"folders,omitempty"` // Pointers for proper nesting
}

// FolderDeletion reports what a folder deletion removed and reassigned.
type FolderDeletion struct {
	FolderID        int64   `json:"folder_id"`
	RemovedIDs      []int64 `json:"removed_ids"` // the folder and every descendant
	ReassignedNotes int64   `json:"reassigned_notes"`
	DefaultFolderID int64   `json:"default_folder_id"`
}

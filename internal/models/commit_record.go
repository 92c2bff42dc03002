package models

import "time"

// FileStatus represents the status of a file in a commit
type FileStatus string

const (
	FileStatusAdded    FileStatus = "added"
	FileStatusModified FileStatus = "modified"
	FileStatusRemoved  FileStatus = "removed"
	FileStatusRenamed  FileStatus = "renamed"
)

// CommitFileRecord is one (commit, changed file) pair that survived the
// harvest filters. Dates are already converted to the reporting timezone.
type CommitFileRecord struct {
	User         string     `json:"user"`
	Date         time.Time  `json:"date"`
	Filename     string     `json:"filename"`
	TotalChanges int        `json:"total_changes"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	Status       FileStatus `json:"status"`
	URL          string     `json:"url"`
}

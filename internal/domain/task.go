package domain

import "time"

// NeedsReviewStatus is the tracker status set once a submission is in.
const NeedsReviewStatus = "needs review"

// NewTask is the tracker item created next to a new repository.
type NewTask struct {
	Name           string
	StartDate      time.Time
	DueDate        time.Time
	RepositoryName string
}

// TrackedTask is a tracker item found through its repository field.
type TrackedTask struct {
	ID     string
	Name   string
	Status string
}

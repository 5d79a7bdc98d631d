// Package workflow drives the outbound calls made for each kind of webhook.
// Every step is awaited before the next one starts and nothing is rolled
// back when a later step fails.
package workflow

import (
	"context"

	"assignment-bot/internal/domain"
)

// RepositoryHost is the code-hosting side (GitHub).
type RepositoryHost interface {
	CreateRepositoryFromTemplate(ctx context.Context, req domain.RepositoryRequest) error
	AddCollaborator(ctx context.Context, repo, handle string) error
	PostComment(ctx context.Context, commentsURL, body string) error
	ArchiveRepository(ctx context.Context, fullName string) error
}

// Scheduler is the interview-booking side (Calendly).
type Scheduler interface {
	LatestEventByInvitee(ctx context.Context, email string) (domain.ScheduledEventInfo, error)
}

// TaskTracker is the task-tracking side (ClickUp).
type TaskTracker interface {
	CreateTask(ctx context.Context, task domain.NewTask) (domain.TrackedTask, error)
	FindTasksByRepository(ctx context.Context, repo string) ([]domain.TrackedTask, error)
	MarkNeedsReview(ctx context.Context, taskID string) error
	SetPullRequestLink(ctx context.Context, taskID, link string) error
}

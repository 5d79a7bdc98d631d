package workflow

import (
	"context"
	"fmt"

	"assignment-bot/internal/domain"

	"go.uber.org/zap"
)

// FormSubmission sets up an applicant's repository and tracker task from a
// submitted application form.
type FormSubmission struct {
	repos     RepositoryHost
	scheduler Scheduler
	tasks     TaskTracker
}

func NewFormSubmission(repos RepositoryHost, scheduler Scheduler, tasks TaskTracker) *FormSubmission {
	return &FormSubmission{repos: repos, scheduler: scheduler, tasks: tasks}
}

func (w *FormSubmission) Handle(ctx context.Context, logger *zap.Logger, payload []byte) error {
	applicant, err := domain.ParseFormSubmission(payload)
	if err != nil {
		return err
	}

	logger.Info("applicant extracted",
		zap.String("name", applicant.Name),
		zap.String("email", applicant.Email),
		zap.String("githubIdRaw", applicant.RawGitHubID),
		zap.String("githubHandle", applicant.GitHubHandle),
		zap.String("schedulingEventId", applicant.SchedulingEventID),
	)
	if !applicant.HandleResolved() {
		// Collaborator-add is left to fail against the empty handle.
		logger.Warn("could not resolve github handle", zap.String("githubIdRaw", applicant.RawGitHubID))
	}

	event, err := w.scheduler.LatestEventByInvitee(ctx, applicant.Email)
	if err != nil {
		return fmt.Errorf("fetch scheduled event: %w", err)
	}

	repo := domain.NewRepositoryRequest(applicant, event.StartTime)
	logger.Info("repository derived",
		zap.Time("startTime", event.StartTime),
		zap.String("repoName", repo.Name),
		zap.String("repoDescription", repo.Description),
	)

	if err := w.repos.CreateRepositoryFromTemplate(ctx, repo); err != nil {
		return fmt.Errorf("create repository %s: %w", repo.Name, err)
	}
	if err := w.repos.AddCollaborator(ctx, repo.Name, applicant.GitHubHandle); err != nil {
		return fmt.Errorf("add collaborator %q to %s: %w", applicant.GitHubHandle, repo.Name, err)
	}

	task, err := w.tasks.CreateTask(ctx, domain.NewTask{
		Name:           applicant.Name,
		StartDate:      event.StartTime,
		DueDate:        domain.DueDate(event.StartTime),
		RepositoryName: repo.Name,
	})
	if err != nil {
		return fmt.Errorf("create task for %s: %w", repo.Name, err)
	}

	logger.Info("form submission processed", zap.String("repoName", repo.Name), zap.String("taskId", task.ID))
	return nil
}

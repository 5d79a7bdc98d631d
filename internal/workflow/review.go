package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"assignment-bot/internal/apperror"
	"assignment-bot/internal/domain"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
)

const (
	EventPullRequest = "pull_request"

	AcknowledgementComment = "Your test has been successfully submitted.\nThank you."
)

// ReviewRequest closes out a submission once the configured reviewer is
// requested on its pull request.
type ReviewRequest struct {
	repos    RepositoryHost
	tasks    TaskTracker
	reviewer string
}

func NewReviewRequest(repos RepositoryHost, tasks TaskTracker, reviewer string) *ReviewRequest {
	return &ReviewRequest{repos: repos, tasks: tasks, reviewer: reviewer}
}

// Handle processes one GitHub delivery of the given event type. Anything
// other than a review request naming the reviewer is accepted without action.
func (w *ReviewRequest) Handle(ctx context.Context, logger *zap.Logger, eventType string, payload []byte) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return apperror.Validation("empty body")
	}
	if !json.Valid(payload) {
		return apperror.Parsing(nil, "github payload is not JSON")
	}
	if eventType != EventPullRequest {
		logger.Info("ignoring github event", zap.String("event", eventType))
		return nil
	}

	parsed, err := github.ParseWebHook(eventType, payload)
	if err != nil {
		return apperror.Parsing(err, "decode pull_request event")
	}
	prEvent, ok := parsed.(*github.PullRequestEvent)
	if !ok {
		return apperror.Parsing(nil, "unexpected payload type %T", parsed)
	}

	review := domain.NewReviewEvent(prEvent)
	if !review.IsReviewRequested() {
		logger.Info("ignoring pull_request action", zap.String("action", review.Action))
		return nil
	}
	if !review.HasReviewer(w.reviewer) || review.RepoFullName == "" {
		logger.Info("review not requested from submission reviewer",
			zap.Strings("reviewers", review.Reviewers),
			zap.String("repo", review.RepoFullName),
		)
		return nil
	}

	if err := w.repos.PostComment(ctx, review.CommentsURL, AcknowledgementComment); err != nil {
		return fmt.Errorf("comment on %s: %w", review.HTMLURL, err)
	}
	if err := w.repos.ArchiveRepository(ctx, review.RepoFullName); err != nil {
		return fmt.Errorf("archive %s: %w", review.RepoFullName, err)
	}

	tasks, err := w.tasks.FindTasksByRepository(ctx, review.RepoName)
	if err != nil {
		return fmt.Errorf("find task for %s: %w", review.RepoName, err)
	}
	if len(tasks) == 0 {
		logger.Warn("no task tracks repository", zap.String("repo", review.RepoName))
		return nil
	}

	task := tasks[0]
	if err := w.tasks.MarkNeedsReview(ctx, task.ID); err != nil {
		return fmt.Errorf("update status of task %s: %w", task.ID, err)
	}
	if err := w.tasks.SetPullRequestLink(ctx, task.ID, review.HTMLURL); err != nil {
		return fmt.Errorf("link pull request to task %s: %w", task.ID, err)
	}

	logger.Info("submission marked for review",
		zap.String("repo", review.RepoFullName),
		zap.String("taskId", task.ID),
		zap.String("pullRequest", review.HTMLURL),
	)
	return nil
}

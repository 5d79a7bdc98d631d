package domain

import (
	"strings"

	"github.com/google/go-github/v68/github"
)

const ActionReviewRequested = "review_requested"

// ReviewEvent is the slice of a pull_request webhook the review workflow needs.
type ReviewEvent struct {
	Action       string
	Reviewers    []string
	RepoFullName string
	RepoName     string
	CommentsURL  string
	HTMLURL      string
}

func NewReviewEvent(event *github.PullRequestEvent) ReviewEvent {
	pr := event.GetPullRequest()
	repo := pr.GetBase().GetRepo()

	reviewers := make([]string, 0, len(pr.RequestedReviewers))
	for _, user := range pr.RequestedReviewers {
		reviewers = append(reviewers, user.GetLogin())
	}

	return ReviewEvent{
		Action:       event.GetAction(),
		Reviewers:    reviewers,
		RepoFullName: repo.GetFullName(),
		RepoName:     repo.GetName(),
		CommentsURL:  pr.GetCommentsURL(),
		HTMLURL:      pr.GetHTMLURL(),
	}
}

// IsReviewRequested reports whether the event asks for a review.
func (e ReviewEvent) IsReviewRequested() bool {
	return e.Action == ActionReviewRequested
}

// HasReviewer reports whether login is among the requested reviewers.
// GitHub logins compare case-insensitively.
func (e ReviewEvent) HasReviewer(login string) bool {
	for _, reviewer := range e.Reviewers {
		if strings.EqualFold(reviewer, login) {
			return true
		}
	}
	return false
}

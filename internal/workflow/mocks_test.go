package workflow

import (
	"context"

	"assignment-bot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// callLog records the order in which mocked services are invoked.
type callLog struct {
	calls []string
}

func (l *callLog) record(name string) func(mock.Arguments) {
	return func(mock.Arguments) { l.calls = append(l.calls, name) }
}

type MockRepositoryHost struct {
	mock.Mock
}

func (m *MockRepositoryHost) CreateRepositoryFromTemplate(ctx context.Context, req domain.RepositoryRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockRepositoryHost) AddCollaborator(ctx context.Context, repo, handle string) error {
	return m.Called(ctx, repo, handle).Error(0)
}

func (m *MockRepositoryHost) PostComment(ctx context.Context, commentsURL, body string) error {
	return m.Called(ctx, commentsURL, body).Error(0)
}

func (m *MockRepositoryHost) ArchiveRepository(ctx context.Context, fullName string) error {
	return m.Called(ctx, fullName).Error(0)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) LatestEventByInvitee(ctx context.Context, email string) (domain.ScheduledEventInfo, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.ScheduledEventInfo), args.Error(1)
}

type MockTaskTracker struct {
	mock.Mock
}

func (m *MockTaskTracker) CreateTask(ctx context.Context, task domain.NewTask) (domain.TrackedTask, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(domain.TrackedTask), args.Error(1)
}

func (m *MockTaskTracker) FindTasksByRepository(ctx context.Context, repo string) ([]domain.TrackedTask, error) {
	args := m.Called(ctx, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackedTask), args.Error(1)
}

func (m *MockTaskTracker) MarkNeedsReview(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockTaskTracker) SetPullRequestLink(ctx context.Context, taskID, link string) error {
	return m.Called(ctx, taskID, link).Error(0)
}

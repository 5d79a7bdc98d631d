package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"assignment-bot/internal/apiclient"
	"assignment-bot/internal/apperror"
	"assignment-bot/internal/domain"
)

type ClickUpService struct {
	api         *apiclient.Client
	token       string
	listID      string
	repoFieldID string
	prFieldID   string
}

type ClickUpOptions struct {
	Token       string
	ListID      string
	RepoFieldID string
	PRFieldID   string
}

func NewClickUpService(api *apiclient.Client, opts ClickUpOptions) *ClickUpService {
	return &ClickUpService{
		api:         api,
		token:       opts.Token,
		listID:      opts.ListID,
		repoFieldID: opts.RepoFieldID,
		prFieldID:   opts.PRFieldID,
	}
}

type customFieldValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type customFieldFilter struct {
	FieldID  string `json:"field_id"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type createTaskRequest struct {
	Name         string             `json:"name"`
	StartDate    int64              `json:"start_date"`
	DueDate      int64              `json:"due_date"`
	CustomFields []customFieldValue `json:"custom_fields"`
}

type task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status struct {
		Status string `json:"status"`
	} `json:"status"`
}

func (t task) toDomain() domain.TrackedTask {
	return domain.TrackedTask{ID: t.ID, Name: t.Name, Status: t.Status.Status}
}

type tasksResponse struct {
	Tasks []task `json:"tasks"`
}

func (s *ClickUpService) header() http.Header {
	return http.Header{
		"Content-Type":  []string{"application/json"},
		"Authorization": []string{s.token},
	}
}

// CreateTask adds a task to the configured list with the repository name
// stored in the repository custom field.
func (s *ClickUpService) CreateTask(ctx context.Context, newTask domain.NewTask) (domain.TrackedTask, error) {
	var created task
	err := s.api.Do(ctx, apiclient.ClickUp, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/list/" + url.PathEscape(s.listID) + "/task",
		Header: s.header(),
		Body: createTaskRequest{
			Name:      newTask.Name,
			StartDate: newTask.StartDate.UnixMilli(),
			DueDate:   newTask.DueDate.UnixMilli(),
			CustomFields: []customFieldValue{
				{ID: s.repoFieldID, Value: newTask.RepositoryName},
			},
		},
	}, &created)
	if err != nil {
		return domain.TrackedTask{}, err
	}
	return created.toDomain(), nil
}

// FindTasksByRepository lists tasks whose repository field equals repo.
func (s *ClickUpService) FindTasksByRepository(ctx context.Context, repo string) ([]domain.TrackedTask, error) {
	filter, err := json.Marshal([]customFieldFilter{
		{FieldID: s.repoFieldID, Operator: "=", Value: repo},
	})
	if err != nil {
		return nil, apperror.Parsing(err, "encode custom field filter")
	}
	query := url.Values{}
	query.Set("custom_fields", string(filter))

	var resp tasksResponse
	err = s.api.Do(ctx, apiclient.ClickUp, apiclient.Request{
		Method: http.MethodGet,
		Path:   "/list/" + url.PathEscape(s.listID) + "/task?" + query.Encode(),
		Header: s.header(),
	}, &resp)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.TrackedTask, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, t.toDomain())
	}
	return tasks, nil
}

// MarkNeedsReview moves a task to the review status.
func (s *ClickUpService) MarkNeedsReview(ctx context.Context, taskID string) error {
	return s.api.Do(ctx, apiclient.ClickUp, apiclient.Request{
		Method: http.MethodPut,
		Path:   "/task/" + url.PathEscape(taskID),
		Header: s.header(),
		Body:   map[string]string{"status": domain.NeedsReviewStatus},
	}, nil)
}

// SetPullRequestLink stores link in the task's pull request custom field.
func (s *ClickUpService) SetPullRequestLink(ctx context.Context, taskID, link string) error {
	return s.api.Do(ctx, apiclient.ClickUp, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/task/" + url.PathEscape(taskID) + "/field/" + url.PathEscape(s.prFieldID),
		Header: s.header(),
		Body:   map[string]string{"value": link},
	}, nil)
}

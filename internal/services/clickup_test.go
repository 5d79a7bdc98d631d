package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"assignment-bot/internal/apiclient"
	"assignment-bot/internal/apperror"
	"assignment-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClickUpService(server *httptest.Server) *ClickUpService {
	api := apiclient.New(map[apiclient.Service]string{apiclient.ClickUp: server.URL + "/api/v2"})
	return NewClickUpService(api, ClickUpOptions{
		Token:       "pk_token",
		ListID:      "901",
		RepoFieldID: "repo-field",
		PRFieldID:   "pr-field",
	})
}

func TestClickUpService_CreateTask(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, `{"id":"86abc","name":"Jane Doe","status":{"status":"to do"}}`)
	svc := newTestClickUpService(server)
	start := time.Date(2024, 2, 28, 1, 0, 0, 0, time.UTC)

	created, err := svc.CreateTask(context.Background(), domain.NewTask{
		Name:           "Jane Doe",
		StartDate:      start,
		DueDate:        domain.DueDate(start),
		RepositoryName: "octocat-20240228",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TrackedTask{ID: "86abc", Name: "Jane Doe", Status: "to do"}, created)

	req := rec.only(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v2/list/901/task", req.Path)
	assert.Equal(t, "pk_token", req.Header.Get("Authorization"))
	assert.Equal(t, "Jane Doe", req.Body["name"])
	assert.Equal(t, float64(start.UnixMilli()), req.Body["start_date"])
	assert.Equal(t, float64(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC).UnixMilli()), req.Body["due_date"])
	assert.Equal(t, []any{map[string]any{"id": "repo-field", "value": "octocat-20240228"}}, req.Body["custom_fields"])
}

func TestClickUpService_FindTasksByRepository(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, `{"tasks":[{"id":"t1","name":"Jane","status":{"status":"in progress"}},{"id":"t2"}]}`)
	svc := newTestClickUpService(server)

	tasks, err := svc.FindTasksByRepository(context.Background(), "octocat-20240228")

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, "in progress", tasks[0].Status)

	req := rec.only(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/v2/list/901/task", req.Path)

	query, err := url.ParseQuery(req.Query)
	require.NoError(t, err)
	var filter []map[string]string
	require.NoError(t, json.Unmarshal([]byte(query.Get("custom_fields")), &filter))
	assert.Equal(t, []map[string]string{{"field_id": "repo-field", "operator": "=", "value": "octocat-20240228"}}, filter)
}

func TestClickUpService_FindTasksByRepository_None(t *testing.T) {
	_, server := newRecorder(t, http.StatusOK, `{"tasks":[]}`)
	svc := newTestClickUpService(server)

	tasks, err := svc.FindTasksByRepository(context.Background(), "nobody-20240101")

	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClickUpService_MarkNeedsReview(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, `{"id":"t1"}`)
	svc := newTestClickUpService(server)

	require.NoError(t, svc.MarkNeedsReview(context.Background(), "t1"))

	req := rec.only(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v2/task/t1", req.Path)
	assert.Equal(t, map[string]any{"status": "needs review"}, req.Body)
}

func TestClickUpService_SetPullRequestLink(t *testing.T) {
	rec, server := newRecorder(t, http.StatusOK, `{}`)
	svc := newTestClickUpService(server)

	require.NoError(t, svc.SetPullRequestLink(context.Background(), "t1", "https://github.com/acme/repo/pull/1"))

	req := rec.only(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v2/task/t1/field/pr-field", req.Path)
	assert.Equal(t, map[string]any{"value": "https://github.com/acme/repo/pull/1"}, req.Body)
}

func TestClickUpService_ErrorStatus(t *testing.T) {
	_, server := newRecorder(t, http.StatusBadRequest, `{"err":"Status does not exist","ECODE":"ITEM_114"}`)
	svc := newTestClickUpService(server)

	err := svc.MarkNeedsReview(context.Background(), "t1")

	var apiErr *apperror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Body, "ITEM_114")
}

package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"assignment-bot/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(map[Service]string{ClickUp: server.URL + "/api/v2/"})
}

func TestClient_Do_DecodesSuccess(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotContentType string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	err := client.Do(context.Background(), ClickUp, Request{
		Method: http.MethodPost,
		Path:   "/list/42/task",
		Header: http.Header{"Authorization": []string{"pk_token"}},
		Body:   map[string]string{"name": "Jane"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "abc", out.ID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v2/list/42/task", gotPath)
	assert.Equal(t, "pk_token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Jane", gotBody["name"])
}

func TestClient_Do_EmptyBodyIsEmptyObject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out := map[string]any{}
	err := client.Do(context.Background(), ClickUp, Request{Method: http.MethodGet, Path: "/task/1"}, &out)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_Do_InvalidJSONIsReported(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	t.Run("with target", func(t *testing.T) {
		var out map[string]any
		err := client.Do(context.Background(), ClickUp, Request{Method: http.MethodGet, Path: "/x"}, &out)
		require.Error(t, err)
		assert.Equal(t, apperror.KindParsing, apperror.KindOf(err))
	})

	t.Run("without target", func(t *testing.T) {
		err := client.Do(context.Background(), ClickUp, Request{Method: http.MethodGet, Path: "/x"}, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindParsing, apperror.KindOf(err))
	})
}

func TestClient_Do_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Token invalid"}`))
	})

	err := client.Do(context.Background(), ClickUp, Request{Method: http.MethodGet, Path: "/team"}, nil)

	var apiErr *apperror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsTransport())
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, `{"err":"Token invalid"}`, apiErr.Body)
	assert.Equal(t, "clickup", apiErr.Service)
}

func TestClient_Do_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(map[Service]string{Calendly: url})
	err := client.Do(context.Background(), Calendly, Request{Method: http.MethodGet, Path: "/scheduled_events"}, nil)

	var apiErr *apperror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTransport())
	assert.NotEmpty(t, apiErr.Transport)
}

func TestClient_Do_UnknownService(t *testing.T) {
	client := New(map[Service]string{ClickUp: "http://127.0.0.1:1"})

	err := client.Do(context.Background(), Service("jira"), Request{Method: http.MethodGet, Path: "/"}, nil)

	require.Error(t, err)
	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	assert.Contains(t, err.Error(), `"jira"`)
}

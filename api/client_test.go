package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-tasklist-client/api"
	"github.com/jrsteele09/go-tasklist-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *api.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return api.New(server.URL, func() string { return token })
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(api.List{ListID: "l1"})
	})

	_, err := client.GetList(context.Background(), "l1")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok1", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestNoBearerHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.List{})
	})

	_, err := client.GetList(context.Background(), "l1")
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestErrorDetailParsed(t *testing.T) {
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "list version is stale"})
	})

	_, err := client.GetList(context.Background(), "l1")
	require.Error(t, err)
	require.Equal(t, "list version is stale", err.Error())
	require.Equal(t, http.StatusConflict, api.StatusCode(err))
}

func TestErrorFallsBackToStatusLine(t *testing.T) {
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.GetList(context.Background(), "l1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Equal(t, http.StatusBadGateway, api.StatusCode(err))
}

func TestStatusCodeZeroForTransportErrors(t *testing.T) {
	client := api.New("http://127.0.0.1:1", func() string { return "" })

	_, err := client.GetList(context.Background(), "l1")
	require.Error(t, err)
	require.Zero(t, api.StatusCode(err))
}

func TestExchangeGoogleTokenNotFound(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/google", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var body struct {
			GoogleToken string `json:"google_token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "abc", body.GoogleToken)

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "user not found"})
	})

	_, err := client.ExchangeGoogleToken(context.Background(), "abc")
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, api.StatusCode(err))
}

func TestUserByGoogleIDUsesExplicitToken(t *testing.T) {
	// The stored-token source says signed out; the explicit token from the
	// in-flight exchange must be used instead.
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/google-id/g1", r.URL.Path)
		require.Equal(t, "Bearer fresh-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "u1"})
	})

	user, err := client.UserByGoogleID(context.Background(), "g1", "fresh-token")
	require.NoError(t, err)
	require.Equal(t, "u1", user.UserID)
}

func TestCreateTaskCarriesListVersion(t *testing.T) {
	var got api.CreateTaskRequest
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tasks/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(api.Task{TaskID: "t1", TaskName: got.TaskName})
	})

	task, err := client.CreateTask(context.Background(), api.CreateTaskRequest{
		UserID:      "u1",
		ListID:      "l1",
		TaskName:    "buy milk",
		Reminders:   []string{},
		ListVersion: 3,
	})
	require.NoError(t, err)
	require.Equal(t, "t1", task.TaskID)
	require.Equal(t, 3, got.ListVersion)
}

func TestUpdateTaskOmitsUnsetFields(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(api.Task{TaskID: "t1"})
	})

	_, err := client.UpdateTask(context.Background(), "t1", api.UpdateTaskRequest{
		TaskName:   utils.Ptr("renamed"),
		IsComplete: utils.Ptr(true),
	})
	require.NoError(t, err)

	require.Contains(t, raw, "task_name")
	require.Contains(t, raw, "isComplete")
	require.NotContains(t, raw, "description")
	require.NotContains(t, raw, "isPriority")
}

func TestToggleEndpoints(t *testing.T) {
	var paths []string
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		paths = append(paths, r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.Task{TaskID: "t1"})
	})

	ctx := context.Background()
	_, err := client.ToggleTaskComplete(ctx, "t1")
	require.NoError(t, err)
	_, err = client.ToggleTaskPriority(ctx, "t1")
	require.NoError(t, err)
	_, err = client.ToggleTaskRecurring(ctx, "t1")
	require.NoError(t, err)

	require.Equal(t, []string{
		"/tasks/toggle-complete/t1",
		"/tasks/toggle-priority/t1",
		"/tasks/toggle-recurring/t1",
	}, paths)
}

func TestSharedListPath(t *testing.T) {
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lists/shared/share-1/user/u2", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]api.List{{ListID: "l1", Version: 4}})
	})

	lists, err := client.SharedList(context.Background(), "share-1", "u2")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Equal(t, 4, lists[0].Version)
}

func TestTasksForVersionDecodesSnapshots(t *testing.T) {
	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/list/l1/version/2", r.URL.Path)
		_ = json.NewEncoder(w).Encode([][]api.Task{{{TaskID: "t1"}}, {{TaskID: "t2"}}})
	})

	snapshots, err := client.TasksForVersion(context.Background(), "l1", 2)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	require.Equal(t, "t2", snapshots[1][0].TaskID)
}

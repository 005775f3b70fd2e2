package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reftrack/refadmin/internal/errors"
	"github.com/reftrack/refadmin/internal/log"
)

type staticCreds string

func (s staticCreds) Credential() (string, bool) {
	return string(s), s != ""
}

func testLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatJSON, Output: io.Discard})
}

func newTestClient(t *testing.T, creds Credentials, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, creds, testLogger())
}

func TestClientAttachesBearerAndHeaders(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`{"userCount":1}`))
	})

	_, err := client.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
}

func TestClientOmitsBearerWhenLoggedOut(t *testing.T) {
	var auth string
	client := newTestClient(t, staticCreds(""), func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"isValid":true,"userName":"Jane"}`))
	})

	_, err := client.CheckReferral(context.Background(), "GOOD1")
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClientUnauthorizedTriggersPolicy(t *testing.T) {
	client := newTestClient(t, staticCreds("stale-token"), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	})

	expired := 0
	client.SetOnAuthExpired(func() { expired++ })

	// The reaction is global: it fires no matter which endpoint sees the 401.
	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, err = client.ListCommissionLogs(context.Background())
	require.Error(t, err)

	assert.Equal(t, 2, expired)
}

func TestClientHTTPErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.GetDashboardStats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "upstream exploded", apiErr.Body)
	assert.Contains(t, apiErr.Error(), "500")
}

func TestClientHTTPErrorPrefersJSONMessage(t *testing.T) {
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"email already taken"}`))
	})

	_, err := client.CreateUser(context.Background(), UserInput{Email: "jane@example.com"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "email already taken", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "email already taken")
}

func TestClientParseFailureIsDistinctFromHTTPFailure(t *testing.T) {
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>login page</html>"))
	})

	_, err := client.GetDashboardStats(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.HasCode(err, errors.ErrCodeAPIStatus))
	assert.NotErrorAs(t, err, &apiErr)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAPIParse))
}

func TestClientDoesNotRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClientTransportFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, staticCreds(""), testLogger())

	_, err := client.GetDashboardStats(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeAPITransport))
}

func TestListUsersDecodesBothRoleShapes(t *testing.T) {
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"name":"Jane","email":"jane@example.com","roles":[{"role":{"name":"admin"}}]},
			{"id":2,"name":"Joe","email":"joe@example.com","roles":[{"name":"user"}]}
		]`))
	})

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].IsAdmin())
	assert.False(t, users[1].IsAdmin())
}

func TestCheckReferralEscapesCode(t *testing.T) {
	var query string
	client := newTestClient(t, staticCreds(""), func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"isValid":false}`))
	})

	check, err := client.CheckReferral(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.False(t, check.IsValid)
	assert.Equal(t, "ref=a+b%26c", query)
}

func TestDeleteUserHitsCorrectPath(t *testing.T) {
	var method, path string
	client := newTestClient(t, staticCreds("tok-123"), func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteUser(context.Background(), 42))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/users/42", path)
}

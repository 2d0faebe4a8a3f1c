package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docurio.ai/docurio-client/app/domain/common"
	"docurio.ai/docurio-client/app/domain/mutation"
	"docurio.ai/docurio-client/app/domain/resource"
	"docurio.ai/docurio-client/app/infrastructure/credentials"
	"docurio.ai/docurio-client/app/utils/contextkeys"
)

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, credentials.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := credentials.NewMemoryStore()
	return NewGatewayWithBaseURL(creds, server.URL), creds
}

func saveAPIKey(t *testing.T, creds credentials.Store, key string) {
	t.Helper()
	require.NoError(t, creds.Save(&credentials.Credential{APIKey: key}))
}

func TestFetchJobDetail(t *testing.T) {
	g, creds := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/jobs/j_1", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		assert.Equal(t, "Bearer sk_test_1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"j_1","status":"processing","progress":40}`))
	}))
	saveAPIKey(t, creds, "sk_test_1")

	raw, err := g.Fetch(context.Background(), resource.JobKey("j_1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"j_1","status":"processing","progress":40}`, string(raw))
}

func TestFetchListPaging(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/jobs", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"jobs":[],"total":0,"page":2,"page_size":25}`))
	}))

	_, err := g.Fetch(context.Background(), resource.JobListKey(2, 25))
	require.NoError(t, err)
}

func TestFetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	g := NewGatewayWithBaseURL(credentials.NewMemoryStore(), server.URL)

	_, err := g.Fetch(context.Background(), resource.JobKey("j_1"))
	require.Error(t, err)
	assert.Equal(t, common.KindNetwork, common.KindOf(err))
}

func TestFetchAuthExpired(t *testing.T) {
	g, creds := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"c2fdbc3c-6be9-46ad-a3c7-4a734d10d60b","error":"token expired"}`))
	}))
	saveAPIKey(t, creds, "sk_dead")

	_, err := g.Fetch(context.Background(), resource.IdentityKey())
	require.Error(t, err)
	assert.True(t, common.IsAuthExpired(err))

	var apiErr *common.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "c2fdbc3c-6be9-46ad-a3c7-4a734d10d60b", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "token expired")
}

func TestFetchAnonymous401IsClientError(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"login required"}`))
	}))

	_, err := g.Fetch(context.Background(), resource.IdentityKey())
	require.Error(t, err)
	assert.Equal(t, common.KindClient, common.KindOf(err))
	assert.False(t, common.IsAuthExpired(err), "anonymous 401 is not an expired session")
}

func TestFetchServerError(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := g.Fetch(context.Background(), resource.TemplateListKey())
	require.Error(t, err)
	assert.Equal(t, common.KindServer, common.KindOf(err))
	assert.Contains(t, err.Error(), http.StatusText(http.StatusInternalServerError))
}

func TestMutateCreateJob(t *testing.T) {
	g, creds := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/jobs", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(HeaderIdempotencyKey))

		var body mutation.CreateJobPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, mutation.CreateJobPayload{
			Kind:         "conversion",
			Files:        []mutation.FileSpec{{Name: "report.docx"}},
			TargetFormat: "pdf",
		}, body)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"j_new","status":"pending"}`))
	}))
	saveAPIKey(t, creds, "sk_test_1")

	raw, err := g.Mutate(context.Background(), mutation.KindJobCreate, mutation.CreateJobPayload{
		Kind:         "conversion",
		Files:        []mutation.FileSpec{{Name: "report.docx"}},
		TargetFormat: "pdf",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"j_new","status":"pending"}`, string(raw))
}

func TestMutateCancelJobPath(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/jobs/j_9/cancel", r.URL.Path)
		w.Write([]byte(`{"id":"j_9","status":"cancelled"}`))
	}))

	raw, err := g.Mutate(context.Background(), mutation.KindJobCancel, mutation.CancelJobPayload{JobID: "j_9"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"j_9","status":"cancelled"}`, string(raw))
}

func TestMutateRejectsWrongPayloadType(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request must be issued for an invalid payload")
	}))

	_, err := g.Mutate(context.Background(), mutation.KindJobCancel, mutation.DeleteJobPayload{JobID: "j_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid payload")
}

func TestLoginReturnsTokens(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/login", r.URL.Path)
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "one@docurio.ai", body.Email)
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":900,"user":{"id":"u_1","email":"one@docurio.ai","is_admin":false,"plan":"free"}}`))
	}))

	tokens, err := g.Login(context.Background(), "one@docurio.ai", "secret")
	require.NoError(t, err)
	assert.Equal(t, "at", tokens.AccessToken)
	assert.Equal(t, "rt", tokens.RefreshToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "u_1", tokens.User.UserID)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cred := tokens.Credential(now)
	require.True(t, cred.Present())
	assert.Equal(t, "Bearer at", cred.AuthorizationValue())
	assert.Equal(t, now.Add(900*time.Second), cred.Token.Expiry)
}

func TestLoginFailureIsClientError(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}))

	_, err := g.Login(context.Background(), "one@docurio.ai", "wrong")
	require.Error(t, err)
	assert.Equal(t, common.KindClient, common.KindOf(err))
}

func TestLogout(t *testing.T) {
	g, creds := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth/logout", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	}))
	saveAPIKey(t, creds, "sk_test_1")

	require.NoError(t, g.Logout(context.Background()))
}

func TestRequestIDFromContext(t *testing.T) {
	g, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", r.Header.Get(HeaderRequestID))
		w.Write([]byte(`{}`))
	}))

	ctx := context.WithValue(context.Background(), contextkeys.RequestId{}, "req-123")
	_, err := g.Fetch(ctx, resource.AdminStatsKey())
	require.NoError(t, err)
}

func TestEndpointForCoversEveryKind(t *testing.T) {
	cases := []struct {
		key  resource.Key
		path string
	}{
		{resource.JobKey("j_1"), "/v1/jobs/j_1"},
		{resource.JobListKey(1, 25), "/v1/jobs"},
		{resource.JobResultKey("j_1"), "/v1/jobs/j_1/result"},
		{resource.IdentityKey(), "/v1/auth/me"},
		{resource.GuestUsageKey(), "/v1/usage/guest"},
		{resource.TemplateKey("t_1"), "/v1/templates/t_1"},
		{resource.TemplateListKey(), "/v1/templates"},
		{resource.AdminUserKey("u_1"), "/v1/admin/users/u_1"},
		{resource.AdminUserListKey(1, 50), "/v1/admin/users"},
		{resource.AdminStatsKey(), "/v1/admin/stats"},
		{resource.AuditListKey(1, 50), "/v1/admin/audit-logs"},
		{resource.ServiceHealthKey(), "/health-check"},
	}
	for _, tc := range cases {
		path, _, err := endpointFor(tc.key)
		require.NoError(t, err, "kind %s", tc.key.Kind)
		assert.Equal(t, tc.path, path)
	}

	_, _, err := endpointFor(resource.NewKey(resource.Kind("ghost")))
	assert.Error(t, err)

	_, _, err = endpointFor(resource.NewKey(resource.KindJob))
	assert.Error(t, err, "job detail without id has no endpoint")
}

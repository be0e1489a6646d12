package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musegate-dev/musegate/internal/guard"
	"github.com/musegate-dev/musegate/internal/session"
)

// captureNotifier records every transient notification for assertions
type captureNotifier struct {
	messages []string
}

func (n *captureNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

type testEnv struct {
	client   *Client
	sessions *session.MemoryStore
	router   *guard.Router
	notified *captureNotifier
}

func newTestEnv(t *testing.T, handler http.Handler) (*testEnv, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := session.NewMemoryStore()
	router := guard.NewRouter(sessions)
	notified := &captureNotifier{}
	policy := NewPolicy(sessions, router, notified, zerolog.Nop())
	client := New(server.URL, 5*time.Second, sessions, policy, zerolog.Nop())

	return &testEnv{
		client:   client,
		sessions: sessions,
		router:   router,
		notified: notified,
	}, server
}

func envelopeHandler(t *testing.T, body string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

func TestDo_UnwrapsSuccessEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		out  func() any
		want func(t *testing.T, out any)
	}{
		{
			name: "object data",
			body: `{"code":0,"data":{"id":5,"title":"Bronze Mirror"}}`,
			out:  func() any { return &ExhibitItem{} },
			want: func(t *testing.T, out any) {
				item := out.(*ExhibitItem)
				assert.Equal(t, int64(5), item.ID)
				assert.Equal(t, "Bronze Mirror", item.Title)
			},
		},
		{
			name: "primitive data",
			body: `{"code":0,"data":42}`,
			out:  func() any { return new(int64) },
			want: func(t *testing.T, out any) {
				assert.Equal(t, int64(42), *out.(*int64))
			},
		},
		{
			name: "array data",
			body: `{"code":0,"data":[1,2,3]}`,
			out:  func() any { return &[]int{} },
			want: func(t *testing.T, out any) {
				assert.Equal(t, []int{1, 2, 3}, *out.(*[]int))
			},
		},
		{
			name: "null data leaves out untouched",
			body: `{"code":0,"data":null}`,
			out:  func() any { return &ExhibitItem{} },
			want: func(t *testing.T, out any) {
				assert.Equal(t, &ExhibitItem{}, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(t, envelopeHandler(t, tt.body))

			out := tt.out()
			err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, out)
			require.NoError(t, err)
			tt.want(t, out)
			assert.Empty(t, env.notified.messages, "success must not notify")
		})
	}
}

func TestDo_BusinessFailureCarriesEnvelope(t *testing.T) {
	env, _ := newTestEnv(t, envelopeHandler(t, `{"code":40001,"data":{"remaining":0},"message":"no quota left"}`))

	err := env.client.do(context.Background(), http.MethodPost, "/api/test", nil, nil, nil)
	require.Error(t, err)

	var bizErr *BusinessError
	require.True(t, errors.As(err, &bizErr))
	assert.Equal(t, 40001, bizErr.Code)
	assert.Equal(t, "no quota left", bizErr.Message)
	assert.JSONEq(t, `{"remaining":0}`, string(bizErr.Data))

	// Message was surfaced exactly once
	assert.Equal(t, []string{"no quota left"}, env.notified.messages)
}

func TestDo_InjectsTokenHeader(t *testing.T) {
	var gotHeader, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("x-auth-token")
		gotRequestID = r.Header.Get(requestIDHeader)
		w.Write([]byte(`{"code":0,"data":true}`))
	})

	env, _ := newTestEnv(t, handler)
	require.NoError(t, env.sessions.SetToken("tok-abc"))
	require.NoError(t, env.sessions.SetTokenName("x-auth-token"))

	err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "tok-abc", gotHeader)
	assert.NotEmpty(t, gotRequestID, "every request carries a request ID")
}

func TestDo_DefaultTokenHeaderName(t *testing.T) {
	var gotHeader string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(session.DefaultTokenName)
		w.Write([]byte(`{"code":0,"data":true}`))
	})

	env, _ := newTestEnv(t, handler)
	require.NoError(t, env.sessions.SetToken("tok-abc"))

	require.NoError(t, env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil))
	assert.Equal(t, "tok-abc", gotHeader)
}

func TestDo_NoTokenMeansNoHeader(t *testing.T) {
	var hadHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hadHeader = r.Header.Get(session.DefaultTokenName) != ""
		w.Write([]byte(`{"code":0,"data":true}`))
	})

	env, _ := newTestEnv(t, handler)
	require.NoError(t, env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil))
	assert.False(t, hadHeader, "logged-out requests go out unauthenticated")
}

func TestDo_Unauthorized(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		currentPath string
		wantLogin   string
	}{
		{
			name:        "plain 401 from user namespace",
			status:      http.StatusUnauthorized,
			body:        `{"code":401,"message":"token expired"}`,
			currentPath: "/items",
			wantLogin:   guard.LoginUserPath,
		},
		{
			name:        "plain 401 from admin namespace",
			status:      http.StatusUnauthorized,
			body:        `{"code":401,"message":"token expired"}`,
			currentPath: "/admin/items",
			wantLogin:   guard.LoginAdminPath,
		},
		{
			name:        "embedded code 401 under a different status",
			status:      http.StatusBadRequest,
			body:        `{"code":401,"message":"token expired"}`,
			currentPath: "/booking",
			wantLogin:   guard.LoginUserPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			env, _ := newTestEnv(t, handler)

			require.NoError(t, env.sessions.SetToken("stale"))
			require.NoError(t, env.sessions.SetTokenName("satoken"))
			require.NoError(t, env.sessions.SetLoginType(session.LoginTypeUser))
			env.router.Redirect(tt.currentPath)

			err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
			require.Error(t, err)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr), "expected AuthError, got %T", err)

			// Whole session wiped
			assert.Empty(t, env.sessions.Token())
			assert.Empty(t, env.sessions.TokenName())
			assert.Empty(t, env.sessions.LoginType())

			// Redirected to the login page of the pre-failure namespace
			assert.Equal(t, tt.wantLogin, env.router.Current())

			assert.Equal(t, []string{msgSessionExpired}, env.notified.messages)
		})
	}
}

func TestDo_PermissionDeniedLeavesSessionIntact(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"code":402,"message":"admins only"}`))
	})
	env, _ := newTestEnv(t, handler)

	require.NoError(t, env.sessions.SetToken("tok"))
	require.NoError(t, env.sessions.SetLoginType(session.LoginTypeUser))
	env.router.Redirect("/items")

	err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
	require.Error(t, err)

	var permErr *PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, "admins only", permErr.Message)

	// Session untouched, no redirect: forbidden is not logged-out
	assert.Equal(t, "tok", env.sessions.Token())
	assert.Equal(t, session.LoginTypeUser, env.sessions.LoginType())
	assert.Equal(t, "/items", env.router.Current())
}

func TestDo_PermissionDeniedFallbackMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})
	env, _ := newTestEnv(t, handler)

	err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, []string{msgNoPermission}, env.notified.messages)
}

func TestDo_OtherTransportFailure(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
	}{
		{
			name:        "server message wins",
			body:        `{"code":500,"message":"exhibit vault on fire"}`,
			wantMessage: "exhibit vault on fire",
		},
		{
			name:        "status text as fallback",
			body:        `not even json`,
			wantMessage: http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			})
			env, _ := newTestEnv(t, handler)

			require.NoError(t, env.sessions.SetToken("tok"))

			err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
			assert.Equal(t, []string{tt.wantMessage}, env.notified.messages)

			// Only 401 clears the session
			assert.Equal(t, "tok", env.sessions.Token())
		})
	}
}

func TestDo_NetworkFailure(t *testing.T) {
	env, server := newTestEnv(t, http.NotFoundHandler())
	server.Close() // kill the backend before the call

	err := env.client.do(context.Background(), http.MethodGet, "/api/test", nil, nil, nil)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, []string{msgNetworkFailed}, env.notified.messages)
}

func TestGetBlob_BypassesEnvelope(t *testing.T) {
	raw := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x01} // not JSON at all
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(raw)
	})
	env, _ := newTestEnv(t, handler)

	got, err := env.client.getBlob(context.Background(), "/api/admin/users/export", nil)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Empty(t, env.notified.messages)
}

func TestGetBlob_EnvelopeShapedBodyStaysRaw(t *testing.T) {
	// Even a body that happens to look like an envelope must come back verbatim
	body := `{"code":0,"data":"csv,content"}`
	env, _ := newTestEnv(t, envelopeHandler(t, body))

	got, err := env.client.getBlob(context.Background(), "/api/admin/users/export", nil)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
}

func TestGetBlob_FailedResponseStillClassified(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401}`))
	})
	env, _ := newTestEnv(t, handler)
	require.NoError(t, env.sessions.SetToken("stale"))

	_, err := env.client.getBlob(context.Background(), "/api/admin/users/export", nil)
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Empty(t, env.sessions.Token())
}

func TestLogin_ReturnsProfile(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sys-user/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "visitor", req.Username)

		w.Write([]byte(`{"code":0,"data":{"id":9,"username":"visitor","nickname":"V","role":"USER","token":"tok-9"}}`))
	})
	env, _ := newTestEnv(t, handler)

	resp, err := env.client.Login(context.Background(), LoginRequest{Username: "visitor", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "tok-9", resp.Token)
}

func TestRegister_ValidationFailsBeforeEgress(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"code":0,"data":1}`))
	})
	env, _ := newTestEnv(t, handler)

	_, err := env.client.Register(context.Background(), RegisterRequest{
		Username:        "visitor",
		Password:        "secret1",
		ConfirmPassword: "different",
	})
	require.Error(t, err)
	assert.Zero(t, calls, "invalid requests must not reach the backend")
}

func TestCreateBooking_RejectsMalformedDate(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	env, _ := newTestEnv(t, handler)

	_, err := env.client.CreateBooking(context.Background(), CreateBookingRequest{VisitDate: "next tuesday"})
	require.Error(t, err)
	assert.Zero(t, calls)
}

package commands

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/authstate"
	"github.com/musegate-dev/musegate/internal/config"
	"github.com/musegate-dev/musegate/internal/guard"
	"github.com/musegate-dev/musegate/internal/session"
)

// newTestApp wires a full App against a mock backend, with an in-memory
// session store and stdout captured in a buffer.
func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := session.NewMemoryStore()
	auth := authstate.New(sessions)
	router := guard.NewRouter(sessions)
	policy := api.NewPolicy(sessions, router, api.NotifierFunc(func(string) {}), zerolog.Nop())
	client := api.New(server.URL, 0, sessions, policy, zerolog.Nop())

	var out bytes.Buffer
	app := &App{
		Config:   &config.Config{},
		Log:      zerolog.Nop(),
		Sessions: sessions,
		Auth:     auth,
		Router:   router,
		Client:   client,
		Out:      &out,
	}
	return app, &out
}

func loginAs(t *testing.T, app *App, loginType string) {
	t.Helper()

	role := "USER"
	if loginType == session.LoginTypeAdmin {
		role = authstate.RoleAdmin
	}
	err := app.Auth.SetUser(authstate.Profile{
		ID:       1,
		Username: "tester",
		Role:     role,
		Token:    "test-token",
	}, loginType)
	if err != nil {
		t.Fatalf("failed to set up session: %v", err)
	}
}

func TestNavigateTo_NotLoggedIn(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler())

	err := app.navigateTo("/items")
	if err == nil {
		t.Fatal("expected an error for a protected route without a session")
	}
	if !strings.Contains(err.Error(), "musegate login") {
		t.Errorf("error should tell the user to log in, got: %v", err)
	}
}

func TestNavigateTo_UserOnAdminRoute(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler())
	loginAs(t, app, session.LoginTypeUser)

	err := app.navigateTo("/admin/users")
	if err == nil {
		t.Fatal("expected an error for an admin route with a visitor session")
	}
	if !strings.Contains(err.Error(), "--admin") {
		t.Errorf("error should point at the admin login, got: %v", err)
	}
}

func TestNavigateTo_AllowedRoute(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler())
	loginAs(t, app, session.LoginTypeUser)

	if err := app.navigateTo("/items"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := app.Router.Current(); got != "/items" {
		t.Errorf("router should have moved to /items, got %s", got)
	}
}

func TestNavigateTo_RootRedirectsHome(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler())
	loginAs(t, app, session.LoginTypeUser)

	if err := app.navigateTo("/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := app.Router.Current(); got != guard.HomePath {
		t.Errorf("root should settle on %s, got %s", guard.HomePath, got)
	}
}

func TestRunItemsList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/items" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"code":0,"data":{"records":[
			{"id":1,"title":"Bronze Mirror","mediaKind":"IMAGE"},
			{"id":2,"title":"Jade Seal","mediaKind":"VIDEO"}
		],"total":2,"size":10,"current":1,"pages":1}}`))
	})
	app, out := newTestApp(t, handler)
	loginAs(t, app, session.LoginTypeUser)

	if err := runItemsList(app, 1, 10, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "Bronze Mirror") || !strings.Contains(output, "Jade Seal") {
		t.Errorf("table should list both exhibits, got:\n%s", output)
	}
	if !strings.Contains(output, "2 exhibits total") {
		t.Errorf("summary line missing, got:\n%s", output)
	}
}

func TestRunItemsList_RequiresLogin(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})
	app, _ := newTestApp(t, handler)

	if err := runItemsList(app, 1, 10, ""); err == nil {
		t.Fatal("expected a login error")
	}
	if calls != 0 {
		t.Error("the guard should have blocked the request before it left the process")
	}
}

func TestRunBookingCreate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bookings/create" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"code":0,"data":{"id":7,"visitDate":"2026-09-01","ticketCode":"TK-778899","status":1}}`))
	})
	app, out := newTestApp(t, handler)
	loginAs(t, app, session.LoginTypeUser)

	if err := runBookingCreate(app, "2026-09-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "TK-778899") {
		t.Errorf("ticket code missing from output:\n%s", out.String())
	}
}

func TestRunAdminDashboard(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"todayBookedCount":12,"todayTotalQuota":100,
			"totalCommentCount":40,"pendingCommentCount":3,"totalUserCount":250,
			"monthlyBookingCount":300,"todayVerifiedCount":8,"todayCancelledCount":1}}`))
	})
	app, out := newTestApp(t, handler)
	loginAs(t, app, session.LoginTypeAdmin)

	if err := runAdminDashboard(app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "12 booked / 100 quota") {
		t.Errorf("dashboard numbers missing:\n%s", out.String())
	}
}

func TestRunAdminDashboard_VisitorDenied(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler())
	loginAs(t, app, session.LoginTypeUser)

	if err := runAdminDashboard(app); err == nil {
		t.Fatal("a visitor session must not reach admin commands")
	}
}

func TestRunLogout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":true}`))
	})
	app, out := newTestApp(t, handler)
	loginAs(t, app, session.LoginTypeUser)

	if err := runLogout(app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Sessions.Token() != "" {
		t.Error("logout should wipe the stored token")
	}
	if !strings.Contains(out.String(), "Logged out") {
		t.Errorf("missing confirmation:\n%s", out.String())
	}
}

func TestRunLogout_NotLoggedIn(t *testing.T) {
	app, out := newTestApp(t, http.NotFoundHandler())

	if err := runLogout(app); err != nil {
		t.Fatalf("logout without a session should be a no-op, got: %v", err)
	}
	if !strings.Contains(out.String(), "Not logged in") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunWhoami_NotLoggedIn(t *testing.T) {
	app, out := newTestApp(t, http.NotFoundHandler())

	if err := runWhoami(app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Not logged in") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCommandTree(t *testing.T) {
	cmd := NewAdminCmd()

	wanted := []string{"dashboard", "users", "items", "comments", "bookings", "quota", "upload"}
	for _, name := range wanted {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("admin command is missing subcommand %q", name)
		}
	}
}

package guard

import (
	"testing"

	"github.com/musegate-dev/musegate/internal/session"
)

func newTestRouter(t *testing.T, token, loginType string) *Router {
	t.Helper()

	sessions := session.NewMemoryStore()
	if token != "" {
		if err := sessions.SetToken(token); err != nil {
			t.Fatal(err)
		}
	}
	if loginType != "" {
		if err := sessions.SetLoginType(loginType); err != nil {
			t.Fatal(err)
		}
	}
	return NewRouter(sessions)
}

func TestNavigate_GuardRules(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		loginType  string
		target     string
		wantAction Action
		wantTarget string
	}{
		{
			name:       "protected admin route without token goes to admin login",
			target:     "/admin/users",
			wantAction: ActionRedirect,
			wantTarget: LoginAdminPath,
		},
		{
			name:       "protected user route without token goes to user login",
			target:     "/items",
			wantAction: ActionRedirect,
			wantTarget: LoginUserPath,
		},
		{
			name:       "user token on admin route goes to admin login",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     AdminHomePath,
			wantAction: ActionRedirect,
			wantTarget: LoginAdminPath,
		},
		{
			name:       "admin token on user route goes to user login",
			token:      "tok",
			loginType:  session.LoginTypeAdmin,
			target:     "/booking",
			wantAction: ActionRedirect,
			wantTarget: LoginUserPath,
		},
		{
			name:       "authed user visiting user login lands home",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     LoginUserPath,
			wantAction: ActionRedirect,
			wantTarget: HomePath,
		},
		{
			name:       "authed user visiting register lands home",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     RegisterPath,
			wantAction: ActionRedirect,
			wantTarget: HomePath,
		},
		{
			name:       "authed admin visiting admin login lands on admin home",
			token:      "tok",
			loginType:  session.LoginTypeAdmin,
			target:     LoginAdminPath,
			wantAction: ActionRedirect,
			wantTarget: AdminHomePath,
		},
		{
			name:       "user-typed token may revisit admin login",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     LoginAdminPath,
			wantAction: ActionAllow,
			wantTarget: LoginAdminPath,
		},
		{
			name:       "matching session allows protected route",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     "/items/42",
			wantAction: ActionAllow,
			wantTarget: "/items/42",
		},
		{
			name:       "matching admin session allows admin route",
			token:      "tok",
			loginType:  session.LoginTypeAdmin,
			target:     "/admin/bookings",
			wantAction: ActionAllow,
			wantTarget: "/admin/bookings",
		},
		{
			name:       "anonymous user may visit register",
			target:     RegisterPath,
			wantAction: ActionAllow,
			wantTarget: RegisterPath,
		},
		{
			name:       "root redirects to home then to login when logged out",
			target:     "/",
			wantAction: ActionRedirect,
			wantTarget: LoginUserPath,
		},
		{
			name:       "root settles on home for an authed user",
			token:      "tok",
			loginType:  session.LoginTypeUser,
			target:     "/",
			wantAction: ActionRedirect,
			wantTarget: HomePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.token, tt.loginType)

			decision, err := router.Navigate(tt.target)
			if err != nil {
				t.Fatalf("Navigate(%q) failed: %v", tt.target, err)
			}

			if decision.Action != tt.wantAction {
				t.Errorf("expected action %v, got %v", tt.wantAction, decision.Action)
			}
			if decision.Target != tt.wantTarget {
				t.Errorf("expected target %q, got %q", tt.wantTarget, decision.Target)
			}
			if router.Current() != tt.wantTarget {
				t.Errorf("expected router to settle on %q, got %q", tt.wantTarget, router.Current())
			}
		})
	}
}

func TestNavigate_UnknownRoute(t *testing.T) {
	router := newTestRouter(t, "", "")

	if _, err := router.Navigate("/no/such/route"); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestDecide_DoesNotMoveRouter(t *testing.T) {
	router := newTestRouter(t, "", "")

	decision, err := router.Decide("/items")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decision.Action != ActionRedirect || decision.Target != LoginUserPath {
		t.Errorf("unexpected decision: %+v", decision)
	}
	if router.Current() != "/" {
		t.Errorf("Decide must not move the router, current is %q", router.Current())
	}
}

func TestLoginPathForNamespace(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/admin/items", LoginAdminPath},
		{"/admin", LoginAdminPath},
		{"/items/3", LoginUserPath},
		{"/home", LoginUserPath},
		{"/", LoginUserPath},
	}

	for _, tt := range tests {
		if got := LoginPathForNamespace(tt.path); got != tt.want {
			t.Errorf("LoginPathForNamespace(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMatchPattern_ParamSegments(t *testing.T) {
	if !matchPattern("/items/:id", "/items/17") {
		t.Error("expected param segment to match")
	}
	if matchPattern("/items/:id", "/items") {
		t.Error("expected length mismatch to fail")
	}
	if matchPattern("/items/:id", "/admin/17") {
		t.Error("expected literal mismatch to fail")
	}
}

package api

import (
	"github.com/rs/zerolog"

	"github.com/musegate-dev/musegate/internal/guard"
	"github.com/musegate-dev/musegate/internal/session"
)

// User-facing failure messages. The backend's own message wins whenever it
// sent one; these are the fallbacks.
const (
	msgSessionExpired = "session expired, please log in again"
	msgNoPermission   = "no permission for this operation"
	msgRequestFailed  = "request failed"
	msgNetworkFailed  = "network unreachable, check your connection"
)

// Notifier receives transient user-facing failure messages. The CLI prints
// them to stderr; tests capture them.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Policy performs the side effects of failed calls, once each, centrally:
// notification, session wipe and redirect. Keeping it behind this type keeps
// the transport code free of UI concerns, while callers still get every
// failure back as an error.
type Policy struct {
	sessions session.Store
	router   *guard.Router
	notifier Notifier
	log      zerolog.Logger
}

func NewPolicy(sessions session.Store, router *guard.Router, notifier Notifier, log zerolog.Logger) *Policy {
	return &Policy{
		sessions: sessions,
		router:   router,
		notifier: notifier,
		log:      log,
	}
}

func (p *Policy) notify(message string) {
	if message == "" {
		return
	}
	if p.notifier != nil {
		p.notifier.Notify(message)
	}
}

// authExpired wipes the session and moves the router to the login page that
// matches the namespace of the path the failure happened on.
func (p *Policy) authExpired() {
	current := p.router.Current()

	if err := p.sessions.ClearAll(); err != nil {
		p.log.Warn().Err(err).Msg("failed to clear session after auth failure")
	}

	target := guard.LoginPathForNamespace(current)
	p.router.Redirect(target)
	p.log.Debug().Str("from", current).Str("to", target).Msg("session expired, redirected to login")

	p.notify(msgSessionExpired)
}

package screens

import (
	"context"
	"sync"

	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

type SessionDisplay struct {
	auth   remote.Auth
	timing Timing

	mu   sync.Mutex
	user *remote.User
}

func NewSessionDisplay(auth remote.Auth, timing Timing) *SessionDisplay {
	return &SessionDisplay{auth: auth, timing: timing}
}

// Mount loads the signed-in identity. There is no retry.
func (d *SessionDisplay) Mount(ctx context.Context) (Outcome, error) {
	user, err := d.auth.CurrentUser(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("current_user_failed", "screen", "profile", "error", err)
		return Outcome{Notification: d.timing.failure("Error", err.Error())}, err
	}

	d.mu.Lock()
	d.user = &user
	d.mu.Unlock()
	return Outcome{}, nil
}

func (d *SessionDisplay) User() (remote.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.user == nil {
		return remote.User{}, false
	}
	return *d.user, true
}

func (d *SessionDisplay) SignOut(ctx context.Context) (Outcome, error) {
	l := logging.FromContext(ctx).With("screen", "profile")

	if err := d.auth.SignOut(ctx); err != nil {
		l.Warn("logout_failed", "error", err)
		return Outcome{Notification: d.timing.failure("Error", err.Error())}, err
	}

	d.mu.Lock()
	d.user = nil
	d.mu.Unlock()

	l.Info("logout_success")
	return Outcome{
		Notification: d.timing.success("Logged out", "You have been logged out successfully."),
		Transition:   &Transition{Kind: Reset, Route: RouteLogin},
	}, nil
}

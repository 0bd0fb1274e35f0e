package screens

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/pkg/logging"
)

type GateState int

const (
	Unauthenticated GateState = iota
	Submitting
	Authenticated
	SignUpPending
)

func (s GateState) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Submitting:
		return "submitting"
	case Authenticated:
		return "authenticated"
	case SignUpPending:
		return "sign-up-pending"
	default:
		return "unknown"
	}
}

// SignupAuthorizer admits or rejects a sign-up attempt by its gate password.
type SignupAuthorizer interface {
	Authorize(gatePassword string) bool
}

// StaticSecret is a single shared admission password. It is not a credential.
type StaticSecret string

func (s StaticSecret) Authorize(gatePassword string) bool {
	return subtle.ConstantTimeCompare([]byte(s), []byte(gatePassword)) == 1
}

type SessionGate struct {
	auth       remote.Auth
	authorizer SignupAuthorizer
	timing     Timing

	mu              sync.Mutex
	state           GateState
	passwordVisible bool
}

func NewSessionGate(auth remote.Auth, authorizer SignupAuthorizer, timing Timing) *SessionGate {
	return &SessionGate{auth: auth, authorizer: authorizer, timing: timing}
}

func (g *SessionGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *SessionGate) setState(s GateState) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

func (g *SessionGate) PasswordVisible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.passwordVisible
}

func (g *SessionGate) TogglePasswordVisible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.passwordVisible = !g.passwordVisible
	return g.passwordVisible
}

func (g *SessionGate) SignIn(ctx context.Context, email, password string) (Outcome, error) {
	l := logging.FromContext(ctx).With("screen", "login")

	if strings.TrimSpace(email) == "" || password == "" {
		field := "email"
		if strings.TrimSpace(email) != "" {
			field = "password"
		}
		return Outcome{Notification: g.timing.failure("Login Failed", "Please enter email or password.")},
			&MissingFieldError{Field: field}
	}

	g.setState(Submitting)
	if err := g.auth.SignIn(ctx, email, password); err != nil {
		g.setState(Unauthenticated)
		l.Warn("login_failed", "error", err)
		return Outcome{Notification: g.timing.failure("Login Failed", "Invalid credentials.")},
			fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	g.setState(Authenticated)
	l.Info("login_success")
	return Outcome{
		Notification: g.timing.success("Success!", "Logged in successfully!"),
		Transition:   &Transition{Kind: Reset, Route: RouteHome, After: g.timing.NavigateDelay},
	}, nil
}

// SignUp creates the account and signs straight in with the same credentials.
func (g *SessionGate) SignUp(ctx context.Context, email, password, confirm, gatePassword string) (Outcome, error) {
	l := logging.FromContext(ctx).With("screen", "signup")

	if password != confirm {
		return Outcome{Notification: g.timing.failure("Error", "Passwords do not match.")}, ErrPasswordMismatch
	}
	if g.authorizer == nil || !g.authorizer.Authorize(gatePassword) {
		l.Warn("signup_rejected", "reason", "gate password")
		return Outcome{Notification: g.timing.failure("Error", "Invalid admin password.")}, ErrUnauthorizedSignup
	}

	g.setState(SignUpPending)
	if err := g.auth.SignUp(ctx, email, password); err != nil {
		g.setState(Unauthenticated)
		l.Warn("signup_failed", "error", err)
		return Outcome{Notification: g.timing.failure("Error", err.Error())}, err
	}

	if err := g.auth.SignIn(ctx, email, password); err != nil {
		g.setState(Unauthenticated)
		l.Warn("signup_login_failed", "error", err)
		return Outcome{
			Notification: g.timing.failure("Error", "Account created, but login failed. Please log in manually."),
			Transition:   &Transition{Kind: Replace, Route: RouteLogin},
		}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	g.setState(Authenticated)
	l.Info("signup_success")
	return Outcome{
		Notification: g.timing.success("Success", "Account created and logged in!"),
		Transition:   &Transition{Kind: Reset, Route: RouteHome},
	}, nil
}

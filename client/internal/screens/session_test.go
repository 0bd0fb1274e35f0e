package screens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory/client/internal/remote"
)

const gateSecret = "admin123"

func newGate(auth *fakeAuth) *SessionGate {
	return NewSessionGate(auth, StaticSecret(gateSecret), DefaultTiming())
}

func TestSignIn_BlankFieldsFailFast(t *testing.T) {
	tests := []struct {
		name, email, password, field string
	}{
		{name: "blank email", email: "", password: "x", field: "email"},
		{name: "spaces email", email: "  ", password: "x", field: "email"},
		{name: "blank password", email: "a@example.com", password: "", field: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{}
			g := newGate(auth)

			out, err := g.SignIn(context.Background(), tt.email, tt.password)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.Zero(t, auth.signInCalls)
			assert.Equal(t, Unauthenticated, g.State())
			require.NotNil(t, out.Notification)
			assert.Equal(t, "Login Failed", out.Notification.Title)
		})
	}
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	auth := &fakeAuth{signInErr: remoteErr("signIn", 401, "invalid email or password")}
	g := newGate(auth)

	out, err := g.SignIn(context.Background(), "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	var rerr *RemoteOperationError
	assert.ErrorAs(t, err, &rerr)
	assert.Equal(t, Unauthenticated, g.State())
	require.NotNil(t, out.Notification)
	assert.Equal(t, KindError, out.Notification.Kind)
	assert.Nil(t, out.Transition)
}

func TestSignIn_Success(t *testing.T) {
	auth := &fakeAuth{}
	g := newGate(auth)

	out, err := g.SignIn(context.Background(), "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, g.State())
	assert.Equal(t, 1, auth.signInCalls)
	require.NotNil(t, out.Notification)
	assert.Equal(t, KindSuccess, out.Notification.Kind)
	require.NotNil(t, out.Transition)
	assert.Equal(t, Reset, out.Transition.Kind)
	assert.Equal(t, RouteHome, out.Transition.Route)
	assert.Equal(t, DefaultTiming().NavigateDelay, out.Transition.After)
}

func TestSignUp_PasswordMismatchNeverCallsRemote(t *testing.T) {
	tests := []struct {
		name, email, gate string
	}{
		{name: "valid gate", email: "a@example.com", gate: gateSecret},
		{name: "wrong gate too", email: "a@example.com", gate: "nope"},
		{name: "blank email", email: "", gate: gateSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{}
			g := newGate(auth)

			out, err := g.SignUp(context.Background(), tt.email, "secret1", "secret2", tt.gate)
			assert.ErrorIs(t, err, ErrPasswordMismatch)
			assert.Zero(t, auth.signUpCalls)
			assert.Zero(t, auth.signInCalls)
			assert.Equal(t, "Passwords do not match.", out.Notification.Message)
		})
	}
}

func TestSignUp_WrongGateNeverCallsRemote(t *testing.T) {
	tests := []struct {
		name, email, password, gate string
	}{
		{name: "wrong secret", email: "a@example.com", password: "secret1", gate: "admin"},
		{name: "empty secret", email: "a@example.com", password: "secret1", gate: ""},
		{name: "invalid email", email: "not-an-email", password: "secret1", gate: "Admin123"},
		{name: "empty password", email: "", password: "", gate: "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{}
			g := newGate(auth)

			out, err := g.SignUp(context.Background(), tt.email, tt.password, tt.password, tt.gate)
			assert.ErrorIs(t, err, ErrUnauthorizedSignup)
			assert.Zero(t, auth.signUpCalls)
			assert.Equal(t, Unauthenticated, g.State())
			assert.Equal(t, "Invalid admin password.", out.Notification.Message)
		})
	}
}

func TestSignUp_RemoteFailureForwardsMessage(t *testing.T) {
	auth := &fakeAuth{signUpErr: remoteErr("signUp", 409, "user already exists")}
	g := newGate(auth)

	out, err := g.SignUp(context.Background(), "a@example.com", "secret1", "secret1", gateSecret)
	require.Error(t, err)
	assert.Equal(t, "user already exists", out.Notification.Message)
	assert.Zero(t, auth.signInCalls)
	assert.Equal(t, Unauthenticated, g.State())
}

func TestSignUp_AutoLoginFailure(t *testing.T) {
	auth := &fakeAuth{signInErr: errBoom}
	g := newGate(auth)

	out, err := g.SignUp(context.Background(), "a@example.com", "secret1", "secret1", gateSecret)
	require.Error(t, err)
	assert.Equal(t, 1, auth.signUpCalls)
	assert.Equal(t, 1, auth.signInCalls)
	assert.Equal(t, Unauthenticated, g.State())
	assert.Equal(t, "Account created, but login failed. Please log in manually.", out.Notification.Message)
	require.NotNil(t, out.Transition)
	assert.Equal(t, Replace, out.Transition.Kind)
	assert.Equal(t, RouteLogin, out.Transition.Route)
}

func TestSignUp_Success(t *testing.T) {
	auth := &fakeAuth{}
	g := newGate(auth)

	out, err := g.SignUp(context.Background(), "a@example.com", "secret1", "secret1", gateSecret)
	require.NoError(t, err)
	assert.Equal(t, Authenticated, g.State())
	require.NotNil(t, out.Transition)
	assert.Equal(t, Reset, out.Transition.Kind)
	assert.Equal(t, RouteHome, out.Transition.Route)
	assert.Zero(t, out.Transition.After)
}

func TestTogglePasswordVisible(t *testing.T) {
	g := newGate(&fakeAuth{})
	assert.False(t, g.PasswordVisible())
	assert.True(t, g.TogglePasswordVisible())
	assert.False(t, g.TogglePasswordVisible())
}

func TestStaticSecret(t *testing.T) {
	s := StaticSecret("admin123")
	assert.True(t, s.Authorize("admin123"))
	assert.False(t, s.Authorize("admin1234"))
	assert.False(t, s.Authorize(""))
}

func TestSessionDisplay_Mount(t *testing.T) {
	auth := &fakeAuth{user: remote.User{ID: "u1", Email: "a@example.com"}}
	d := NewSessionDisplay(auth, DefaultTiming())

	_, ok := d.User()
	assert.False(t, ok)

	out, err := d.Mount(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out.Notification)
	u, ok := d.User()
	require.True(t, ok)
	assert.Equal(t, "a@example.com", u.Email)
}

func TestSessionDisplay_MountFailure(t *testing.T) {
	auth := &fakeAuth{currentUserErr: remoteErr("getCurrentUser", 401, "not signed in")}
	d := NewSessionDisplay(auth, DefaultTiming())

	out, err := d.Mount(context.Background())
	require.Error(t, err)
	require.NotNil(t, out.Notification)
	assert.Equal(t, "not signed in", out.Notification.Message)
	_, ok := d.User()
	assert.False(t, ok)
}

func TestSessionDisplay_SignOut(t *testing.T) {
	auth := &fakeAuth{user: remote.User{Email: "a@example.com"}}
	d := NewSessionDisplay(auth, DefaultTiming())
	_, err := d.Mount(context.Background())
	require.NoError(t, err)

	out, err := d.SignOut(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Logged out", out.Notification.Title)
	require.NotNil(t, out.Transition)
	assert.Equal(t, Reset, out.Transition.Kind)
	assert.Equal(t, RouteLogin, out.Transition.Route)
	_, ok := d.User()
	assert.False(t, ok)
}

func TestSessionDisplay_SignOutFailureKeepsSession(t *testing.T) {
	auth := &fakeAuth{user: remote.User{Email: "a@example.com"}, signOutErr: errBoom}
	d := NewSessionDisplay(auth, DefaultTiming())
	_, err := d.Mount(context.Background())
	require.NoError(t, err)

	out, err := d.SignOut(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindError, out.Notification.Kind)
	assert.Nil(t, out.Transition)
	_, ok := d.User()
	assert.True(t, ok)
}

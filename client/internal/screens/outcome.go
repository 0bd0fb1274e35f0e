// Package screens holds the state behind each client screen. Operations
// return an Outcome describing what the user should see next; the UI layer
// decides how to render it.
package screens

import "time"

type NotificationKind int

const (
	KindSuccess NotificationKind = iota
	KindError
)

// Notification is a transient banner. Visible is how long it stays up.
type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
	Visible time.Duration
}

type Route int

const (
	RouteLogin Route = iota
	RouteSignup
	RouteHome
	RouteAddItem
	RouteEditItem
	RouteProfile
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "Login"
	case RouteSignup:
		return "Signup"
	case RouteHome:
		return "Home"
	case RouteAddItem:
		return "Add Item"
	case RouteEditItem:
		return "Edit Item"
	case RouteProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

type TransitionKind int

const (
	Push TransitionKind = iota
	Replace
	Reset
	Back
)

// Transition is a navigation request. After is how long to wait before
// navigating, so a banner shown with it can be read first. Zero navigates at
// once.
type Transition struct {
	Kind  TransitionKind
	Route Route
	After time.Duration
}

// Outcome is what a screen operation asks the UI to show next. Either field
// may be nil; a zero Outcome means stay put silently.
type Outcome struct {
	Notification *Notification
	Transition   *Transition
}

// Timing holds the banner display time and the delay before navigating after
// a successful submit or sign-in.
type Timing struct {
	Banner        time.Duration
	NavigateDelay time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Banner:        3 * time.Second,
		NavigateDelay: 2 * time.Second,
	}
}

func (t Timing) success(title, message string) *Notification {
	return &Notification{Kind: KindSuccess, Title: title, Message: message, Visible: t.Banner}
}

func (t Timing) failure(title, message string) *Notification {
	return &Notification{Kind: KindError, Title: title, Message: message, Visible: t.Banner}
}

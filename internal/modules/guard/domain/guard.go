package domain

// Route names a console screen. The login screen is the only route that is
// never gated.
type Route string

const RouteLogin Route = "login"

func (r Route) Protected() bool {
	return r != RouteLogin
}

// Decision is the outcome of evaluating a navigation against the session
// state. There are exactly two states: a non-empty token allows protected
// routes, anything else bounces to login.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
)

func Evaluate(route Route, token string) Decision {
	if !route.Protected() {
		return Allow
	}
	if token == "" {
		return RedirectToLogin
	}
	return Allow
}

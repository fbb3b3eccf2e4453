package dto

type EvaluateInput struct {
	Route string
}

type EvaluateOutput struct {
	Allowed bool
	// Redirect names the route to navigate to instead; navigation to it
	// must replace history so "back" cannot re-enter the guarded area.
	Redirect string
}

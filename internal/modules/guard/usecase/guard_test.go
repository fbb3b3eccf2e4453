package usecase_test

import (
	"context"
	"errors"
	"testing"

	"eductl/internal/modules/guard/dto"
	"eductl/internal/modules/guard/service"
	"eductl/internal/modules/guard/usecase"
	apperrors "eductl/internal/platform/errors"
)

type memoryTokens struct {
	token string
}

func (m *memoryTokens) Token(context.Context) string { return m.token }

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	t.Parallel()
	tokens := &memoryTokens{}
	uc := usecase.NewInteractor(service.NewGuardService(tokens))

	for _, route := range []string{"lessons", "exams", "questions", "accounts"} {
		out, err := uc.Evaluate(context.Background(), dto.EvaluateInput{Route: route})
		if err != nil {
			t.Fatalf("evaluate %s: %v", route, err)
		}
		if out.Allowed {
			t.Fatalf("route %s must be gated without a token", route)
		}
		if out.Redirect != "login" {
			t.Fatalf("route %s must redirect to login, got %q", route, out.Redirect)
		}
	}
}

func TestLoginRouteIsAlwaysAllowed(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewGuardService(&memoryTokens{}))
	out, err := uc.Evaluate(context.Background(), dto.EvaluateInput{Route: "login"})
	if err != nil {
		t.Fatalf("evaluate login: %v", err)
	}
	if !out.Allowed {
		t.Fatalf("login route must never be gated")
	}
}

func TestFreshTokenIsVisibleToNextEvaluation(t *testing.T) {
	t.Parallel()
	tokens := &memoryTokens{}
	uc := usecase.NewInteractor(service.NewGuardService(tokens))

	if out, _ := uc.Evaluate(context.Background(), dto.EvaluateInput{Route: "lessons"}); out.Allowed {
		t.Fatalf("expected redirect before login")
	}
	// The guard holds no state of its own; a token set elsewhere takes
	// effect on the very next navigation.
	tokens.token = "tok-abc"
	out, err := uc.Evaluate(context.Background(), dto.EvaluateInput{Route: "lessons"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !out.Allowed {
		t.Fatalf("route must open once a token exists")
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	tokens := &memoryTokens{}
	uc := usecase.NewInteractor(service.NewGuardService(tokens))

	if err := uc.RequireAuth(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	tokens.token = "tok-abc"
	if err := uc.RequireAuth(context.Background()); err != nil {
		t.Fatalf("require auth with token: %v", err)
	}
}

package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	querydto "eductl/internal/modules/query/dto"
	queryin "eductl/internal/modules/query/port/in"
	"eductl/internal/modules/session/domain"
	sessionout "eductl/internal/modules/session/port/out"
)

// LoginGateway authenticates through the query client so the login request
// shares the same transport and error shaping as every other call.
type LoginGateway struct {
	query queryin.Usecase
}

func NewLoginGateway(query queryin.Usecase) sessionout.Authenticator {
	return &LoginGateway{query: query}
}

type loginBody struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

func (g *LoginGateway) Authenticate(ctx context.Context, credentials domain.Credentials) (string, string, error) {
	result, err := g.query.Mutate(ctx, querydto.MutationInput{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: loginBody{
			Email:       credentials.Email,
			PhoneNumber: credentials.PhoneNumber,
			Password:    credentials.Password,
		},
		Label: "login",
	})
	if err != nil {
		return "", "", err
	}
	var resp loginResponse
	if err := json.Unmarshal(result.Body, &resp); err != nil {
		return "", "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.Token == "" {
		return "", "", fmt.Errorf("login response carried no token: %s", resp.Message)
	}
	return resp.Token, resp.Message, nil
}

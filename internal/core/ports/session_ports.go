package ports

import (
	"context"

	"github.com/smallie/smallie/internal/core/domain"
)

type TokenPayload struct {
	Email   string
	Name    string
	Picture string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	// GetRefreshTokenByHash returns domain.ErrSessionNotFound when no
	// row matches the hash.
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type SessionService interface {
	LoginWithGoogle(ctx context.Context, credential string) (accessToken string, refreshToken string, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	// Current projects the session state the page renders from. An
	// absent or invalid token is the signed-out state, not an error.
	Current(ctx context.Context, accessToken string) domain.SessionState
}

package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

type SessionService struct {
	userRepo       ports.UserRepository
	authRepo       ports.AuthRepository
	tokenVerifier  ports.TokenVerifier
	jwtSecret      []byte
	googleClientID string
	log            *slog.Logger
}

func NewSessionService(userRepo ports.UserRepository, authRepo ports.AuthRepository, tokenVerifier ports.TokenVerifier, jwtSecret, googleClientID string, log *slog.Logger) *SessionService {
	if jwtSecret == "" {
		log.Warn("JWT_SECRET not set")
	}

	return &SessionService{
		userRepo:       userRepo,
		authRepo:       authRepo,
		tokenVerifier:  tokenVerifier,
		jwtSecret:      []byte(jwtSecret),
		googleClientID: googleClientID,
		log:            log,
	}
}

func (s *SessionService) LoginWithGoogle(ctx context.Context, credential string) (string, string, error) {
	payload, err := s.tokenVerifier.Verify(ctx, credential, s.googleClientID)
	if err != nil {
		return "", "", fmt.Errorf("invalid google token: %w", err)
	}

	return s.login(ctx, payload)
}

func (s *SessionService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return "", "", fmt.Errorf("failed to get refresh token: %w", err)
	}

	if rtEntity.Revoked {
		return "", "", errors.New("refresh token revoked")
	}
	if rtEntity.ExpiresAt.Before(time.Now()) {
		return "", "", errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(ctx, rtEntity.UserID.String())
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", "", errors.New("user not found")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	// The refresh token is not rotated; it stays valid until expiry.
	return accessToken, refreshToken, nil
}

func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if errors.Is(err, domain.ErrSessionNotFound) {
		// Already gone; sign-out is idempotent.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}

	return s.authRepo.RevokeRefreshToken(ctx, rtEntity.ID.String())
}

// Current projects the signed-in/signed-out state the page renders its
// affordances from. Token problems are logged and yield the signed-out
// state; the user can simply retry sign-in.
func (s *SessionService) Current(ctx context.Context, accessToken string) domain.SessionState {
	if accessToken == "" {
		return domain.SessionState{}
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		s.log.Debug("session token rejected", "error", err)
		return domain.SessionState{}
	}

	name, _ := claims["name"].(string)
	avatar, _ := claims["picture"].(string)
	return domain.SessionState{
		SignedIn:    true,
		DisplayName: name,
		AvatarURL:   avatar,
	}
}

func (s *SessionService) login(ctx context.Context, payload *ports.TokenPayload) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, payload.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		user = &domain.User{
			Email:     payload.Email,
			Name:      payload.Name,
			AvatarURL: payload.Picture,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", "", fmt.Errorf("failed to create user: %w", err)
		}
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rtEntity := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour), // 7 days
		Revoked:   false,
	}

	if err := s.authRepo.StoreRefreshToken(ctx, rtEntity); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *SessionService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.AvatarURL,
		"exp":     time.Now().Add(15 * time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *SessionService) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *SessionService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

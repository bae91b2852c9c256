package auth

import (
	"context"
	"fmt"

	"github.com/traindesk/tcms-backend-go/internal/domain/auth"
	"github.com/traindesk/tcms-backend-go/internal/domain/user"
	"github.com/traindesk/tcms-backend-go/internal/pkg/jwt"
	"github.com/traindesk/tcms-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	userRepo      user.UserRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service, googleService oauth.GoogleService) *Service {
	return &Service{
		userRepo:      userRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

func (s *Service) toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		StudentID: u.StudentID,
	}
}

func (s *Service) issueTokens(u user.User) (auth.LoginResponse, string, int64, error) {
	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.StudentID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        s.toUserResponse(u),
	}, refreshToken, refreshExpiresAt, nil
}

// Login authenticates with email and password.
func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get user: %w", err)
	}

	if !u.IsActive {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountInactive
	}
	if u.PasswordHash == nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.RefreshResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userIDVal, ok := token.Get("user_id")
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrUserNotFound
	}
	if !u.IsActive {
		return auth.RefreshResponse{}, auth.ErrAccountInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.StudentID, u.Role)
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{AccessToken: accessToken, ExpiresAt: expiresAt}, nil
}

// Logout revokes the refresh token.
func (s *Service) Logout(refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID string) (auth.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}
	return s.toUserResponse(u), nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// GoogleRedirectURL starts the OAuth2 login flow.
func (s *Service) GoogleRedirectURL(userAgent string) (url string, state string) {
	state = s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), state
}

// GoogleCallback finishes the OAuth2 flow. Only existing accounts can sign
// in this way; there is no self-registration.
func (s *Service) GoogleCallback(ctx context.Context, code string) (auth.LoginResponse, string, int64, error) {
	token, err := s.googleService.Exchange(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidToken
	}

	info, err := s.googleService.FetchUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to verify google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.LoginResponse{}, "", 0, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, "", 0, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.IsActive {
		return auth.LoginResponse{}, "", 0, auth.ErrAccountInactive
	}

	return s.issueTokens(u)
}

// SSEToken issues a short-lived token for the event stream endpoint.
func (s *Service) SSEToken(userID string) (string, int, error) {
	return s.jwtService.GenerateSSEToken(userID)
}

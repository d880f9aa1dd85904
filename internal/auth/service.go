package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/sample1/member-api/internal/config"
	"github.com/sample1/member-api/internal/shared/logger"
	"github.com/sample1/member-api/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the operator account configured by ADMIN_USERNAME / ADMIN_PASSWORD_HASH
type AuthService struct {
	admin        config.AdminConfig
	tokenManager token.Manager
}

func NewAuthService(admin config.AdminConfig, tokenManager token.Manager) *AuthService {
	return &AuthService{
		admin:        admin,
		tokenManager: tokenManager,
	}
}

func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Validate username (bcrypt still runs so timing does not reveal it)
	usernameOK := subtle.ConstantTimeCompare([]byte(request.Username), []byte(a.admin.Username)) == 1

	// 2. Validate password
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(request.Password))
	if !usernameOK || passwordErr != nil {
		log.Warn("로그인 실패 - invalid credentials", "username", request.Username)
		return nil, fmt.Errorf("error %w", ErrIncorrectCredentials)
	}

	// 3. Generate JWT tokens
	response, err := a.issue(ctx, a.admin.Username)
	if err != nil {
		return nil, err
	}

	log.Info("로그인 성공", "username", request.Username)
	return response, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (a *AuthService) Refresh(ctx context.Context, request *RefreshRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokenManager.ValidateToken(request.RefreshToken)
	if err != nil {
		log.Warn("refresh token 검증 실패", "error", err)
		return nil, fmt.Errorf("%v %w", err, ErrInvalidRefreshToken)
	}
	if claims.TokenType != token.REFRESH {
		log.Warn("refresh token이 아닙니다", "token_type", claims.TokenType)
		return nil, fmt.Errorf("token_type=%s %w", claims.TokenType, ErrInvalidRefreshToken)
	}
	// 운영자 계정이 바뀐 뒤의 토큰은 거부
	if claims.OperatorID != a.admin.Username {
		log.Warn("알 수 없는 운영자", "operator_id", claims.OperatorID)
		return nil, fmt.Errorf("operator=%s %w", claims.OperatorID, ErrInvalidRefreshToken)
	}

	return a.issue(ctx, claims.OperatorID)
}

func (a *AuthService) issue(ctx context.Context, operatorID string) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	accessToken, err := a.tokenManager.GenerateAccessToken(operatorID)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(operatorID)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

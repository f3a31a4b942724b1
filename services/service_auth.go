package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"jobboard/dto"
	"jobboard/internal/repository"
	"jobboard/model"
)

// AuthService is the identity provider: it registers accounts, checks
// credentials and issues the HS256 tokens the JWT middleware verifies.
type AuthService struct {
	users  repository.UserStore
	secret []byte
}

func NewAuthService(users repository.UserStore, secret []byte) *AuthService {
	return &AuthService{users: users, secret: secret}
}

func (s *AuthService) Register(ctx context.Context, body dto.RegisterDTO) (*dto.AuthResponse, error) {
	if err := validateBody(body); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := model.User{
		Name:         body.Name,
		Email:        strings.TrimSpace(strings.ToLower(body.Email)),
		PasswordHash: string(hash),
		Role:         body.Role,
		Company:      body.Company,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.authResponse(&user)
}

func (s *AuthService) Login(ctx context.Context, body dto.LoginDTO) (*dto.AuthResponse, error) {
	if err := validateBody(body); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(strings.ToLower(body.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(u *model.User) (*dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID.Hex(),
		"role":  u.Role,
		"email": u.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: signed,
		User:  UserInfo(u),
	}, nil
}

// UserInfo maps a stored user to its public identity shape.
func UserInfo(u *model.User) dto.UserInfoDTO {
	return dto.UserInfoDTO{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Company: u.Company,
	}
}

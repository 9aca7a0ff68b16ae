package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is what a verified admin token carries.
type Claims struct {
	Username string
	IsAdmin  bool
}

type AdminUseCase interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Verify(token string) (*Claims, error)
}

type AdminService struct {
	repo     repository.AdminRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAdminService(repo repository.AdminRepository, secret string, tokenTTL time.Duration) *AdminService {
	if tokenTTL == 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AdminService{repo: repo, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (s *AdminService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(ctx, domain.Admin{Username: username, PasswordHash: string(hash)})
}

func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"username": username,
		"isAdmin":  true,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AdminService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	username, _ := mapClaims["username"].(string)
	isAdmin, _ := mapClaims["isAdmin"].(bool)
	return &Claims{Username: username, IsAdmin: isAdmin}, nil
}

var _ AdminUseCase = (*AdminService)(nil)

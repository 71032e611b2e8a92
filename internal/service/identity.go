package service

import (
	"strings"

	"go.uber.org/zap"

	"homeserve/internal/apperr"
	"homeserve/internal/core/auth"
	"homeserve/internal/domain"
	"homeserve/pkg/utils"
)

type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,max=64"`
	LastName  string `json:"lastName" binding:"required,max=64"`
	Role      string `json:"role" binding:"omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult pairs the public user record with a signed access token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type IdentityService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewIdentityService(users domain.UserRepository, jwt *auth.JWTer, log *zap.Logger) *IdentityService {
	return &IdentityService{users: users, jwt: jwt, log: log}
}

func (s *IdentityService) Register(in RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = domain.RoleHomeowner
	}
	// Admin accounts are provisioned out of band, never self-registered.
	if role != domain.RoleHomeowner && role != domain.RoleProvider {
		return nil, apperr.Validation("invalid role")
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: utils.HashPassword(in.Password),
		Role:         role,
	}
	if err := s.users.Create(u); err != nil {
		// Concurrent registration of the same email loses on the unique
		// index; report it as the same conflict.
		if isDupKey(err) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("create user", err)
	}

	tok, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return &AuthResult{User: u, Token: tok}, nil
}

func (s *IdentityService) Login(in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	// Unknown email and bad password are indistinguishable to the caller.
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	tok, err := s.jwt.Issue(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	return &AuthResult{User: u, Token: tok}, nil
}

func (s *IdentityService) Current(userID string) (*domain.User, error) {
	u, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperr.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperr.Unauthenticated("invalid token")
	}
	return u, nil
}

func (s *IdentityService) UpdateProfile(userID string, patch domain.ProfileUpdate) (*domain.User, error) {
	u, err := s.Current(userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	if err := s.users.Update(u); err != nil {
		return nil, apperr.Internal("update user", err)
	}
	return u, nil
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}

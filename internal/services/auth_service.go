package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"catalogue/internal/apperrors"
	"catalogue/internal/authorize"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
)

// tokenTTL is the fixed lifetime of an issued bearer token.
const tokenTTL = time.Hour

// SignupInput carries the fields of a signup request. Role is only
// honored when the acting caller is an authenticated admin.
type SignupInput struct {
	Email    string
	Password string
	Role     string
}

// AuthService handles registration, login and the token lifecycle.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewAuthService creates a new AuthService. The signing secret comes
// from process configuration, loaded once at startup.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

// Signup registers a new account. actor is the resolved identity of the
// caller, nil when the request was anonymous. A requested role is
// applied only when actor may grant roles; otherwise the account is
// created with the default role, silently, as the signup contract has
// always worked.
func (s *AuthService) Signup(in SignupInput, actor *models.User) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, apperrors.New(apperrors.Validation, "Email déjà utilisé.")
	}

	role := models.RoleUser
	if in.Role != "" && authorize.Allow(actor, authorize.ActionRoleGrant) {
		if !models.ValidRole(in.Role) {
			return nil, apperrors.New(apperrors.Validation, "Le rôle doit être \"admin\" ou \"user\".")
		}
		role = in.Role
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password, returning a bearer token
// and the account. Unknown email and wrong password are deliberately
// indistinguishable.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, apperrors.New(apperrors.Unauthenticated, "Email ou mot de passe incorrect")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.New(apperrors.Unauthenticated, "Email ou mot de passe incorrect")
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs a token carrying the user id, valid for one hour.
func (s *AuthService) IssueToken(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and extracts the user id.
// Expired, malformed and tampered tokens all collapse to the same
// opaque failure; callers cannot tell them apart.
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, apperrors.New(apperrors.Unauthenticated, "Token invalide")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, apperrors.New(apperrors.Unauthenticated, "Token invalide")
	}
	id, ok := claims["id"].(float64)
	if !ok || id < 1 {
		return 0, apperrors.New(apperrors.Unauthenticated, "Token invalide")
	}
	return uint(id), nil
}

// GetUserByID resolves a verified token id to a live account.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAllUsers lists every account. Authorization is the caller's job.
func (s *AuthService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

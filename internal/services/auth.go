package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/guidedtopic/guidedtopic-backend/internal/data/repos/user"
	types "github.com/guidedtopic/guidedtopic-backend/internal/domain"
	"github.com/guidedtopic/guidedtopic-backend/internal/pkg/apperr"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
	"github.com/guidedtopic/guidedtopic-backend/internal/requestdata"
)

// AuthService is the thin identity collaborator: it issues tokens carrying
// the capability flags the content store checks. Password reset and OAuth
// live outside this service.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     userrepo.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, username, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email, username and a password of at least 8 characters are required", apperr.ErrInvalidArgument)
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// New accounts are learners; the author capability is granted
	// administratively.
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Username: username,
		Password: string(hash),
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{u}); err != nil {
		as.log.Error("Register failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return "", fmt.Errorf("%w: unknown email or bad password", apperr.ErrForbidden)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: unknown email or bad password", apperr.ErrForbidden)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        u.ID.String(),
		"can_author": u.CanAuthor,
		"is_admin":   u.IsAdmin,
		"iat":        now.Unix(),
		"exp":        now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// SetContextFromToken verifies the token and installs the caller identity
// with its capability flags into the context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("%w: invalid token", apperr.ErrForbidden)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("%w: invalid claims", apperr.ErrForbidden)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", apperr.ErrForbidden)
	}
	canAuthor, _ := claims["can_author"].(bool)
	isAdmin, _ := claims["is_admin"].(bool)

	rd := &requestdata.RequestData{
		TokenString:     tokenString,
		UserID:          userID,
		IsAuthenticated: true,
		CanAuthor:       canAuthor,
		IsAdmin:         isAdmin,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/dayflowhq/dayflow/internal/entity"
)

type AuthController struct {
	deps *Dependens
}

func NewAuthController(deps *Dependens) *AuthController {
	return &AuthController{
		deps: deps,
	}
}

// Register creates a new user. Email uniqueness is enforced by the
// users.email unique index, so two racing registrations cannot both
// succeed, and the public id comes from a database sequence rather than
// a row count.
func (c *AuthController) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.deps.Logger.Warn("Register with missing fields", slog.String("email", req.Email))
		return nil, fmt.Errorf("name, email and password are required: %w", ErrInvalidInput)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if role != entity.RoleEmployee && role != entity.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.deps.Logger.Error("Error hashing password", slog.String("error", err.Error()))
		return nil, err
	}

	userID, err := c.nextUserID(ctx, role)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Role:        role,
		Status:      entity.StatusActive,
		Phone:       req.Phone,
		Department:  req.Department,
		Designation: req.Designation,
	}
	avatar := avatarURL(req.Name)
	user.Avatar = &avatar

	var rowID int64
	if err := c.deps.DB.QueryRow(ctx, `
		INSERT INTO users (user_id, name, email, password, role, status, phone, department, designation, avatar)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, userID, req.Name, req.Email, string(passwordHash), role, entity.StatusActive,
		req.Phone, req.Department, req.Designation, avatar,
	).Scan(&rowID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			c.deps.Logger.Warn("Email already registered", slog.String("email", req.Email))
			return nil, ErrEmailTaken
		}

		c.deps.Logger.Error("Error inserting user", slog.String("error", err.Error()))
		return nil, err
	}

	user.ID = fmt.Sprintf("%d", rowID)
	return &user, nil
}

// AuthLogin verifies credentials and issues a bearer token whose validity
// is tracked in redis until logout or expiry.
func (c *AuthController) AuthLogin(ctx context.Context, req *entity.LoginRequest) (string, *entity.User, error) {
	row := c.deps.DB.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, req.Email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.deps.Logger.Warn("Login for unknown email", slog.String("email", req.Email))
			return "", nil, ErrInvalidCredentials
		}

		c.deps.Logger.Error("Error querying user", slog.String("error", err.Error()))
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.deps.Logger.Warn("Invalid password", slog.String("email", req.Email))
		return "", nil, ErrInvalidCredentials
	}

	if user.Status != entity.StatusActive {
		c.deps.Logger.Warn("Login for inactive account", slog.String("userId", user.UserID))
		return "", nil, ErrAccountInactive
	}

	token, err := c.createToken(&user)
	if err != nil {
		return "", nil, err
	}

	if err := c.deps.Redis.Set(ctx, "access_token:"+token, "valid", c.deps.Config.Redis.AccessTokenTTL).Err(); err != nil {
		c.deps.Logger.Error("Error storing access token", slog.String("error", err.Error()))
		return "", nil, err
	}

	user.Password = ""
	return token, &user, nil
}

func (c *AuthController) createToken(user *entity.User) (string, error) {
	claims := entity.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.deps.Config.Redis.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(c.deps.Config.Server.JWTSecret))
	if err != nil {
		c.deps.Logger.Error("Error signing token", slog.String("error", err.Error()))
		return "", err
	}

	return tokenStr, nil
}

// CheckUserToken resolves a bearer header to the authenticated principal.
func (c *AuthController) CheckUserToken(ctx context.Context, authHeader string) (*entity.Claims, error) {
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenStr == authHeader || tokenStr == "" {
		return nil, fmt.Errorf("invalid bearer token: %w", ErrUnauthorized)
	}

	if err := c.deps.Redis.Get(ctx, "access_token:"+tokenStr).Err(); errors.Is(err, redis.Nil) {
		c.deps.Logger.Warn("Token revoked or unknown")
		return nil, fmt.Errorf("token revoked: %w", ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &entity.Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(c.deps.Config.Server.JWTSecret), nil
	})
	if err != nil {
		c.deps.Logger.Warn("Error parsing token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}

	if claims, ok := token.Claims.(*entity.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token: %w", ErrUnauthorized)
}

// Logout revokes the presented access token.
func (c *AuthController) Logout(ctx context.Context, authHeader string) error {
	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	if err := c.deps.Redis.Del(ctx, "access_token:"+tokenStr).Err(); err != nil {
		c.deps.Logger.Error("Error deleting access token", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func (c *AuthController) nextUserID(ctx context.Context, role string) (string, error) {
	var seq int64
	if err := c.deps.DB.QueryRow(ctx, `SELECT nextval('user_ids')`).Scan(&seq); err != nil {
		c.deps.Logger.Error("Error acquiring user id", slog.String("error", err.Error()))
		return "", err
	}

	prefix := "EMP"
	if role == entity.RoleAdmin {
		prefix = "ADM"
	}

	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + strings.ReplaceAll(name, " ", "+") + "&background=2563EB&color=fff"
}

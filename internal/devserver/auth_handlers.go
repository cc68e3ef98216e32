package devserver

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"launchpad/internal/models"
	"launchpad/internal/validation"
)

// Register handles POST /api/auth/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req models.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		return respondError(c, fiber.StatusBadRequest, "Username, email, password, and full name are required")
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return respondError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      "creator",
		CreatedAt: time.Now().UTC(),
	}
	if !s.store.CreateUser(user, hash) {
		return respondError(c, fiber.StatusConflict, "User already exists")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return respondData(c, fiber.StatusCreated, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, hash, ok := s.store.GetByEmail(req.Email)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(req.Password)); err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return respondData(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Me handles GET /api/auth/me, the session-resume endpoint.
func (s *Server) Me(c *fiber.Ctx) error {
	user, ok := s.currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return respondData(c, fiber.StatusOK, user)
}

// UpdateProfile handles PUT /api/auth/profile. Only the mutable profile
// fields can change; the full updated user is returned so the client can
// replace its copy wholesale.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	user, ok := s.currentUser(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	var req models.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = normalizeWebsite(*req.Website)
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.SocialLinks != nil {
		links := *req.SocialLinks
		user.SocialLinks = &links
	}

	if !s.store.UpdateUser(user) {
		return respondError(c, fiber.StatusNotFound, "User not found")
	}
	return respondData(c, fiber.StatusOK, user)
}

// normalizeWebsite prefixes a scheme when the user typed a bare domain.
func normalizeWebsite(website string) string {
	if website == "" || strings.Contains(website, "://") {
		return website
	}
	return "https://" + website
}

// AuthRequired validates the bearer token and stores the user ID in locals.
func (s *Server) AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return respondError(c, fiber.StatusUnauthorized, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return respondError(c, fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token subject")
	}

	c.Locals("userID", sub)
	return c.Next()
}

// currentUser resolves the authenticated user from locals set by AuthRequired.
func (s *Server) currentUser(c *fiber.Ctx) (models.User, bool) {
	id, ok := c.Locals("userID").(string)
	if !ok {
		return models.User{}, false
	}
	return s.store.GetByID(id)
}

// generateToken issues a signed JWT for the given user.
func (s *Server) generateToken(user models.User) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iss":      "launchpad-devserver",
		"aud":      "launchpad-client",
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

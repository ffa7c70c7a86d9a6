package handlers

import (
	"log"
	"strings"

	"devurai/internal/middleware"
	"devurai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for signup, login and the current user.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes; authenticate guards the routes
// that act on the current user.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authenticate fiber.Handler) {
	users := router.Group("/users")
	users.Post("/", h.HandleSignup)
	users.Post("/login", h.HandleLogin)
	users.Get("/me", authenticate, h.HandleMe)
	users.Delete("/me/token", authenticate, h.HandleLogout)
}

// CredentialsRequest is the body of signup and login. The login handle is
// always the "name" field.
type CredentialsRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *UserHandler) parseCredentials(c *fiber.Ctx) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleSignup creates a user and logs it in.
func (h *UserHandler) HandleSignup(c *fiber.Ctx) error {
	req, err := h.parseCredentials(c)
	if err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.Register(c.UserContext(), req.Name, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(middleware.TokenHeader, token)
	return c.JSON(user)
}

// HandleLogin checks the credentials and returns the user with a fresh
// token in the x-access-token header. Every failure is a bare 400.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	req, err := h.parseCredentials(c)
	if err != nil || req.Name == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{})
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Name, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Name, err)
		return respondError(c, err)
	}
	c.Set(middleware.TokenHeader, token)
	return c.JSON(user)
}

// HandleMe returns the authenticated user.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleLogout revokes the token the request was authenticated with.
func (h *UserHandler) HandleLogout(c *fiber.Ctx) error {
	err := h.authService.Logout(c.UserContext(), middleware.CurrentUser(c), middleware.CurrentToken(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{})
}

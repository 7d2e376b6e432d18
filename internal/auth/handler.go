package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/catalog"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/models"
	"github.com/ItzMeSam13/AI-Dynamic-Pricing-System/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type SignupRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	BusinessName        string `json:"businessName"`
	BusinessCategory    string `json:"businessCategory"`
	BusinessSubCategory string `json:"businessSubCategory"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	BusinessName        string    `json:"businessName"`
	BusinessCategory    string    `json:"businessCategory"`
	BusinessSubCategory string    `json:"businessSubCategory"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		BusinessName:        u.BusinessName,
		BusinessCategory:    u.BusinessCategory,
		BusinessSubCategory: u.BusinessSubCategory,
	}
}

// Validate applies the signup form rules and returns field -> message.
func (r *SignupRequest) Validate() map[string]string {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = users.NormalizeEmail(r.Email)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.BusinessCategory = strings.TrimSpace(r.BusinessCategory)
	r.BusinessSubCategory = strings.TrimSpace(r.BusinessSubCategory)

	errs := map[string]string{}
	if r.Name == "" {
		errs["name"] = "Name is required"
	}
	if !strings.Contains(r.Email, "@") {
		errs["email"] = "Enter a valid email"
	}
	if len(r.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters long"
	}
	if r.BusinessName == "" {
		errs["businessName"] = "Business Name is required"
	}
	if r.BusinessCategory == "" {
		errs["businessCategory"] = "Select a business category"
	} else if !catalog.IsValid(r.BusinessCategory, r.BusinessSubCategory) {
		errs["businessCategory"] = "Unknown business category or sub-category"
	}
	return errs
}

// POST /auth/signup
func SignupHandler(secret string, store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SignupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := body.Validate(); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": errs,
			})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password could not be hashed")
		}

		user := models.User{
			Name:                body.Name,
			Email:               body.Email,
			PasswordHash:        string(hash),
			BusinessName:        body.BusinessName,
			BusinessCategory:    body.BusinessCategory,
			BusinessSubCategory: body.BusinessSubCategory,
		}

		if err := store.Create(c.UserContext(), &user); err != nil {
			if errors.Is(err, users.ErrEmailTaken) {
				return fiber.NewError(fiber.StatusConflict, "Email is already registered")
			}
			return err
		}

		token, err := GenerateToken(secret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"token": token,
			"user":  toUserResponse(&user),
		})
	}
}

// POST /auth/login
func LoginHandler(secret string, store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		user, err := store.FindByEmail(c.UserContext(), body.Email)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
			}
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := GenerateToken(secret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

// GET /auth/me
func MeHandler(store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
		}

		user, err := store.FindByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return err
		}
		return c.JSON(toUserResponse(user))
	}
}

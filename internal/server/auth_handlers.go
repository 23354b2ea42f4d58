package server

import (
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/auth"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/observability"
	"github.com/yomanino/EcoRed-EcoTrama/internal/ranking"
	"github.com/yomanino/EcoRed-EcoTrama/internal/session"
	"github.com/yomanino/EcoRed-EcoTrama/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the session id cookie.
const SessionCookie = "ecotrama_session"

func (s *Server) setSessionCookie(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(session.DefaultTTL.Seconds()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Register handles POST /api/register.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		Name             string `json:"name"`
		HouseholdAddress string `json:"householdAddress"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewConflictError("El usuario ya existe"))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.EcotramaUser{
		Email:            req.Email,
		Password:         hashed,
		Name:             req.Name,
		HouseholdAddress: req.HouseholdAddress,
		Points:           0,
		Level:            1,
		Rank:             ranking.Rank(0),
		League:           ranking.League(0),
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, models.StatusForError(createErr), createErr)
	}

	sid, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, sid)

	observability.RegistrationsTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/login. Absent email and wrong password produce
// the same generic error so registered emails cannot be probed.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Credenciales inválidas"))
	}

	ok, err := auth.ComparePasswords(req.Password, user.Password)
	if err != nil || !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Credenciales inválidas"))
	}

	sid, err := s.sessions.Create(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, sid)

	return c.JSON(user)
}

// Logout handles POST /api/logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(SessionCookie); sid != "" {
		if err := s.sessions.Destroy(c.Context(), sid); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	s.clearSessionCookie(c)
	return c.SendStatus(fiber.StatusOK)
}

// CurrentUser handles GET /api/user for the active session.
func (s *Server) CurrentUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(user)
}

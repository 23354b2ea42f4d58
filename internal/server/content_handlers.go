package server

import (
	"log/slog"

	"github.com/yomanino/EcoRed-EcoTrama/internal/middleware"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateContactMessage handles POST /api/contact.
func (s *Server) CreateContactMessage(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	if err := validation.ValidateContactMessage(req.Name, req.Email, req.Message); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(c.Context(), message); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "contact message received",
		slog.String("id", message.ID),
		slog.String("email", message.Email),
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Mensaje enviado correctamente",
		"id":      message.ID,
	})
}

// GetContactMessages handles GET /api/contact.
func (s *Server) GetContactMessages(c *fiber.Ctx) error {
	messages, err := s.contactRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(messages)
}

// SubscribeNewsletter handles POST /api/newsletter. Subscribing twice with
// the same email returns the original subscription.
func (s *Server) SubscribeNewsletter(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email inválido"))
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	subscriber, err := s.newsletterRepo.Subscribe(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Suscripción exitosa. Gracias por tu interés en EcoRed Comunal.",
		"id":      subscriber.ID,
	})
}

// GetBlogPosts handles GET /api/blog.
func (s *Server) GetBlogPosts(c *fiber.Ctx) error {
	posts, err := s.blogRepo.ListPublished(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(posts)
}

// GetBlogPostBySlug handles GET /api/blog/:slug.
func (s *Server) GetBlogPostBySlug(c *fiber.Ctx) error {
	post, err := s.blogRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if post == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post no encontrado"))
	}
	return c.JSON(post)
}

// CreateBlogPost handles POST /api/blog.
func (s *Server) CreateBlogPost(c *fiber.Ctx) error {
	var req struct {
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		Excerpt   string `json:"excerpt"`
		Content   string `json:"content"`
		Category  string `json:"category"`
		Image     string `json:"image"`
		Author    string `json:"author"`
		Published bool   `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	if req.Title == "" || req.Slug == "" || req.Excerpt == "" || req.Content == "" || req.Category == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	author := req.Author
	if author == "" {
		author = "EcoRed Comunal"
	}

	post := &models.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Category:  req.Category,
		Image:     req.Image,
		Author:    author,
		Published: req.Published,
	}
	if err := s.blogRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetRecyclingStats handles GET /api/recycling-stats.
func (s *Server) GetRecyclingStats(c *fiber.Ctx) error {
	stats, err := s.statsRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(stats)
}

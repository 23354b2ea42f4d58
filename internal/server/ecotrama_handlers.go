package server

import (
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/ranking"
	"github.com/yomanino/EcoRed-EcoTrama/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecordScan handles POST /api/ecotrama/scan. The scanning user is always
// the session's user; a userId in the body is ignored.
func (s *Server) RecordScan(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req struct {
		WasteType string `json:"wasteType"`
		Quantity  int    `json:"quantity"`
		Barcode   string `json:"barcode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}

	if req.WasteType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Datos inválidos"))
	}
	if req.Quantity < 1 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("La cantidad debe ser positiva"))
	}

	result, err := s.ecotramaService.RecordScan(c.Context(), service.RecordScanInput{
		UserID:    userID,
		WasteType: req.WasteType,
		Quantity:  req.Quantity,
		Barcode:   req.Barcode,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(result)
}

// GetLeaderboard handles GET /api/ecotrama/leaderboard.
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	users, err := s.ecotramaService.Leaderboard(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(users)
}

// GetProductByBarcode handles GET /api/ecotrama/products/:barcode.
func (s *Server) GetProductByBarcode(c *fiber.Ctx) error {
	barcode := c.Params("barcode")

	product, err := s.productRepo.GetByBarcode(c.Context(), barcode)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if product == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Producto no encontrado"))
	}
	return c.JSON(product)
}

// CompleteEducation handles POST /api/ecotrama/education/complete, granting
// the fixed reward for finishing an education activity.
func (s *Server) CompleteEducation(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := s.ecotramaService.CompleteEducation(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message":      "Puntos añadidos",
		"user":         user,
		"pointsEarned": ranking.EducationPoints,
	})
}

// GetMyScans handles GET /api/ecotrama/me/scans.
func (s *Server) GetMyScans(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	scans, err := s.ecotramaService.ScanHistory(c.Context(), userID, c.QueryInt("limit"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(scans)
}

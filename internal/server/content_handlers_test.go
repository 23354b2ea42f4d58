package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/yomanino/EcoRed-EcoTrama/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactMessage(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", fiber.Map{
		"name":    "Carlos Mora",
		"email":   "carlos@example.com",
		"message": "Quiero participar en el programa de reciclaje de mi barrio.",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Mensaje enviado correctamente", body["message"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateContactMessage_Validation(t *testing.T) {
	_, app := newTestServer(t)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"short message", fiber.Map{"name": "Carlos", "email": "carlos@example.com", "message": "Hola"}},
		{"bad email", fiber.Map{"name": "Carlos", "email": "not-an-email", "message": "Quiero más información sobre EcoTrama."}},
		{"missing name", fiber.Map{"email": "carlos@example.com", "message": "Quiero más información sobre EcoTrama."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/contact", tt.body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetContactMessages(t *testing.T) {
	s, app := newTestServer(t)

	require.NoError(t, s.contactRepo.Create(context.Background(), &models.ContactMessage{
		Name: "Carlos", Email: "carlos@example.com", Message: "Primer mensaje de prueba",
	}))

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var messages []models.ContactMessage
	decodeBody(t, resp, &messages)
	require.Len(t, messages, 1)
	assert.Equal(t, "carlos@example.com", messages[0].Email)
}

// Subscribing twice with the same email returns the original subscription
// instead of failing.
func TestSubscribeNewsletter_Idempotent(t *testing.T) {
	_, app := newTestServer(t)

	first, err := app.Test(jsonRequest(http.MethodPost, "/api/newsletter", fiber.Map{
		"email": "ana@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, first.StatusCode)

	var firstBody map[string]string
	decodeBody(t, first, &firstBody)
	assert.Equal(t, "Suscripción exitosa. Gracias por tu interés en EcoRed Comunal.", firstBody["message"])
	require.NotEmpty(t, firstBody["id"])

	second, err := app.Test(jsonRequest(http.MethodPost, "/api/newsletter", fiber.Map{
		"email": "ana@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, second.StatusCode)

	var secondBody map[string]string
	decodeBody(t, second, &secondBody)
	assert.Equal(t, firstBody["id"], secondBody["id"])
}

func TestSubscribeNewsletter_InvalidEmail(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/newsletter", fiber.Map{
		"email": "not-an-email",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBlogPosts(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/blog", fiber.Map{
		"title":     "Guía de separación de residuos",
		"slug":      "guia-separacion-residuos",
		"excerpt":   "Cómo separar residuos en casa.",
		"content":   "Separar los residuos en casa es el primer paso...",
		"category":  "Educación",
		"published": true,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.BlogPost
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "EcoRed Comunal", created.Author)

	// Unpublished drafts stay off the public list.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/blog", fiber.Map{
		"title":    "Borrador",
		"slug":     "borrador",
		"excerpt":  "Aún no publicado.",
		"content":  "Contenido en progreso.",
		"category": "Noticias",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/blog", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.BlogPost
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "guia-separacion-residuos", posts[0].Slug)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/blog/guia-separacion-residuos", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.BlogPost
	decodeBody(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetBlogPostBySlug_NotFound(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/blog/no-existe", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Post no encontrado", body["error"])
}

func TestCreateBlogPost_DuplicateSlug(t *testing.T) {
	s, app := newTestServer(t)

	require.NoError(t, s.blogRepo.Create(context.Background(), &models.BlogPost{
		Title: "Original", Slug: "mismo-slug", Excerpt: "x", Content: "x", Category: "Noticias",
	}))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/blog", fiber.Map{
		"title":    "Copia",
		"slug":     "mismo-slug",
		"excerpt":  "otro extracto",
		"content":  "otro contenido",
		"category": "Noticias",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Ya existe un post con ese slug", body["error"])
}

func TestGetRecyclingStats(t *testing.T) {
	s, app := newTestServer(t)

	_, err := s.statsRepo.Upsert(context.Background(), &models.RecyclingStats{
		CommunityName:     "Barrio Cuba",
		MaterialsRecycled: 1200,
		CO2Reduced:        340,
	})
	require.NoError(t, err)
	_, err = s.statsRepo.Upsert(context.Background(), &models.RecyclingStats{
		CommunityName:     "Zona Centro",
		MaterialsRecycled: 800,
	})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/recycling-stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats []models.RecyclingStats
	decodeBody(t, resp, &stats)
	require.Len(t, stats, 2)
	// Alphabetical by community name.
	assert.Equal(t, "Barrio Cuba", stats[0].CommunityName)
	assert.Equal(t, 340, stats[0].CO2Reduced)
}

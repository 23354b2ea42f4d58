// Package seed provides database seeding for development environments. It is
// idempotent: existing records are left untouched.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/auth"
	"github.com/yomanino/EcoRed-EcoTrama/internal/models"
	"github.com/yomanino/EcoRed-EcoTrama/internal/ranking"
	"github.com/yomanino/EcoRed-EcoTrama/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options control what the seeder creates.
type Options struct {
	// NumUsers is the number of demo accounts to create with randomized
	// scan histories. Zero skips demo accounts.
	NumUsers int
}

var blogPosts = []models.BlogPost{
	{
		Title:     "¿Por qué es importante la economía circular?",
		Slug:      "por-que-economia-circular",
		Excerpt:   "Descubre cómo la economía circular transforma nuestras comunidades y protege el medio ambiente.",
		Content:   "La economía circular es un modelo sostenible que busca minimizar los residuos...",
		Category:  "Educación",
		Author:    "EcoRed Comunal",
		Published: true,
		Image:     "https://images.unsplash.com/photo-1559027615-cd4628902d4a?w=500&h=300&fit=crop",
	},
	{
		Title:     "Cómo separar correctamente tus residuos",
		Slug:      "separar-residuos-correctamente",
		Excerpt:   "Guía práctica para separar residuos en la fuente y maximizar el reciclaje.",
		Content:   "La separación de residuos en la fuente es fundamental para un reciclaje efectivo...",
		Category:  "Tutorial",
		Author:    "EcoRed Comunal",
		Published: true,
		Image:     "/images/family_recycling_v2.jpg",
	},
	{
		Title:     "Historias de éxito: Comunidades transformadas",
		Slug:      "historias-exito-comunidades",
		Excerpt:   "Conoce cómo EcoRed ha transformado comunidades en toda Colombia.",
		Content:   "Estas son las historias inspiradoras de nuestras comunidades...",
		Category:  "Historias",
		Author:    "EcoRed Comunal",
		Published: true,
		Image:     "https://images.unsplash.com/photo-1552664730-d307ca884978?w=500&h=300&fit=crop",
	},
}

var communities = []string{"Barrio Cuba", "Comuna San Joaquín", "Zona Centro"}

var products = []models.Product{
	{Barcode: "7702011000011", Name: "Botella PET 600ml", Brand: "Agua Vital", Type: "Plástico", Points: 10, Description: "Botella plástica retornable al punto EcoTrama."},
	{Barcode: "7702011000028", Name: "Frasco de vidrio 250g", Brand: "Conservas del Valle", Type: "Vidrio", Points: 15},
	{Barcode: "7702011000035", Name: "Lata de aluminio 330ml", Brand: "Gaseosas La Cima", Type: "Metal", Points: 20},
	{Barcode: "7702011000042", Name: "Caja de cartón plegada", Brand: "Empaques Andinos", Type: "Papel", Points: 5},
	{Barcode: "7702011000059", Name: "Cargador de celular", Brand: "", Type: "Electrónico", Points: 50, Description: "Residuo electrónico, entregar en puntos autorizados."},
}

var wasteTypes = []string{"Plástico", "Vidrio", "Metal", "Papel", "Orgánico", "Electrónico"}

// Run seeds blog posts, recycling stats and the product catalog, plus demo
// accounts when requested.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if err := seedBlogPosts(db); err != nil {
		return err
	}
	if err := seedRecyclingStats(db); err != nil {
		return err
	}
	if err := seedProducts(db); err != nil {
		return err
	}
	if opts.NumUsers > 0 {
		if err := seedDemoUsers(db, opts.NumUsers); err != nil {
			return err
		}
	}

	log.Println("Seeding complete")
	return nil
}

func seedBlogPosts(db *gorm.DB) error {
	for i := range blogPosts {
		post := blogPosts[i]
		var count int64
		if err := db.Model(&models.BlogPost{}).Where("slug = ?", post.Slug).Count(&count).Error; err != nil {
			return fmt.Errorf("checking blog post %q: %w", post.Slug, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("seeding blog post %q: %w", post.Slug, err)
		}
	}
	return nil
}

func seedRecyclingStats(db *gorm.DB) error {
	ctx := context.Background()
	statsRepo := repository.NewStatsRepository(db)

	for _, community := range communities {
		// Counters are randomized once; re-running the seeder must not
		// reshuffle existing communities.
		var count int64
		if err := db.Model(&models.RecyclingStats{}).Where("community_name = ?", community).Count(&count).Error; err != nil {
			return fmt.Errorf("checking stats for %q: %w", community, err)
		}
		if count > 0 {
			continue
		}
		if _, err := statsRepo.Upsert(ctx, &models.RecyclingStats{
			CommunityName:           community,
			MaterialsRecycled:       rand.Intn(5000) + 1000,
			HouseholdsParticipating: rand.Intn(200) + 50,
			CO2Reduced:              rand.Intn(50) + 10,
			GreenJobsCreated:        rand.Intn(15) + 3,
		}); err != nil {
			return fmt.Errorf("seeding stats for %q: %w", community, err)
		}
	}
	return nil
}

func seedProducts(db *gorm.DB) error {
	for i := range products {
		product := products[i]
		var count int64
		if err := db.Model(&models.Product{}).Where("barcode = ?", product.Barcode).Count(&count).Error; err != nil {
			return fmt.Errorf("checking product %q: %w", product.Barcode, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("seeding product %q: %w", product.Barcode, err)
		}
	}
	return nil
}

// seedDemoUsers creates accounts with randomized names and scan histories so
// the leaderboard and rank tiers have something to show in development. All
// demo accounts share the password "ecotrama".
func seedDemoUsers(db *gorm.DB, numUsers int) error {
	ctx := context.Background()
	userRepo := repository.NewEcotramaUserRepository(db)

	hashed, err := auth.HashPassword("ecotrama")
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	for i := 0; i < numUsers; i++ {
		email := fmt.Sprintf("demo%02d@ecored.test", i)

		existing, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("checking demo user %q: %w", email, err)
		}
		if existing != nil {
			continue
		}

		user := &models.EcotramaUser{
			Email:            email,
			Password:         hashed,
			Name:             gofakeit.Name(),
			Level:            1,
			Rank:             ranking.RankEcoAliado,
			League:           ranking.LeagueLocal,
			HouseholdAddress: gofakeit.Street(),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seeding demo user %q: %w", email, err)
		}

		for j := 0; j < rand.Intn(20); j++ {
			wasteType := wasteTypes[rand.Intn(len(wasteTypes))]
			quantity := rand.Intn(5) + 1
			if _, err := userRepo.RecordScan(ctx, user.ID, wasteType, quantity, ranking.PointsForWasteType(wasteType)); err != nil {
				return fmt.Errorf("seeding scans for %q: %w", email, err)
			}
		}
	}
	return nil
}

package main

import (
	"log"
	"os"

	"BookingAPI/internal/db"
	"BookingAPI/internal/repository"
	"BookingAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// INFRA
	// ======================
	if err := db.Migrate(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatal(err)
	}

	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET is not set, falling back to the built-in development secret")
		secret = services.DefaultTokenSecret
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserAccessRepository(pool)
	tokenRepo := repository.NewAccessTokenRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	realtyRepo := repository.NewRealtyRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	// ======================
	// SERVICES
	// ======================
	kdf := services.NewSha1KdfService()
	random := services.NewCryptoRandomService()
	codec := services.NewTokenService()

	authSvc := services.NewAuthService(userRepo, tokenRepo, kdf, codec, secret)
	regSvc := services.NewRegistrationService(userRepo, kdf, random)
	bookingSvc := services.NewBookingService(bookingRepo, realtyRepo, userRepo)
	realtySvc := services.NewRealtyService(realtyRepo)
	feedbackSvc := services.NewFeedbackService(feedbackRepo, realtyRepo, userRepo)
	userSvc := services.NewUserService(userRepo, bookingRepo, feedbackRepo, tokenRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, regSvc)
	registerUserRoutes(api, userSvc, secret)
	registerRealtyRoutes(api, realtySvc, secret)
	registerBookingRoutes(api, bookingSvc, secret)
	registerFeedbackRoutes(api, feedbackSvc, secret)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"filmfest/bootstrap"
	"filmfest/config"
	"filmfest/database"
	_ "filmfest/docs"
	"filmfest/dto"
	"filmfest/internal/handlers"
	"filmfest/internal/mailer"
	"filmfest/internal/repository"
	"filmfest/internal/routes"
	"filmfest/pkg/auth"
)

// errorHandler renders every fiber error in the API envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(dto.Response{Success: false, Message: message})
}

// @title        Film Festival CMS API
// @version      1.0
// @description  Festival submission intake and review backend.
func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	client := database.Connect(cfg.MongoURI)
	defer database.Disconnect(client)
	db := client.Database(cfg.MongoDB)

	if err := bootstrap.EnsureIndexes(db); err != nil {
		slog.Error("failed to ensure indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokenManager, err := auth.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		slog.Error("failed to init token manager", slog.String("error", err.Error()))
		os.Exit(1)
	}
	validate := validator.New()

	var mail handlers.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.New(cfg)
	} else {
		slog.Warn("SMTP_HOST not set, submission receipts disabled")
	}

	users := repository.NewUserRepository(db)
	submissions := repository.NewSubmissionRepository(db)
	genreLinks := repository.NewSubmissionGenreRepository(db)
	assignments := repository.NewCrewAssignmentRepository(db)
	nominations := repository.NewNominationRepository(db)
	crewMembers := repository.NewCrewMemberRepository(db)
	enquiries := repository.NewFilmEnquiryRepository(db)

	genres := repository.NewRefRepository(db, "genres")
	countries := repository.NewRefRepository(db, "countries")
	languages := repository.NewRefRepository(db, "languages")
	contentTypes := repository.NewRefRepository(db, "content_types")
	crewRoles := repository.NewRefRepository(db, "crew_roles")
	awardCategories := repository.NewRefRepository(db, "award_categories")

	refs := handlers.RefData{
		Genres:       genres,
		Countries:    countries,
		Languages:    languages,
		ContentTypes: contentTypes,
		CrewRoles:    crewRoles,
	}

	authHandler := handlers.NewAuthHandler(users, tokenManager, validate, cfg.RefreshTTL, cfg.IsProduction())
	userHandler := handlers.NewUserHandler(users)
	submissionHandler := handlers.NewSubmissionHandler(submissions, genreLinks, assignments, nominations, crewMembers, refs, mail)
	assignmentHandler := handlers.NewCrewAssignmentHandler(assignments, submissions)
	nominationHandler := handlers.NewNominationHandler(nominations, submissions)
	crewMemberHandler := handlers.NewCrewMemberHandler(crewMembers)
	enquiryHandler := handlers.NewFilmEnquiryHandler(enquiries)

	app := fiber.New(fiber.Config{
		AppName:      "filmfest",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.Response{Success: true, Message: "OK"})
	})

	api := app.Group("/api/v1")
	routes.RegisterAuthRoutes(api, authHandler)
	routes.RegisterUserRoutes(api, userHandler, tokenManager)
	routes.RegisterSubmissionRoutes(api, submissionHandler, tokenManager)
	routes.RegisterCrewAssignmentRoutes(api, assignmentHandler, tokenManager)
	routes.RegisterNominationRoutes(api, nominationHandler, tokenManager)
	routes.RegisterCrewMemberRoutes(api, crewMemberHandler, tokenManager)
	routes.RegisterFilmEnquiryRoutes(api, enquiryHandler, tokenManager)

	routes.RegisterReferenceRoutes(api, "/genres", handlers.NewReferenceHandler(genres, "Genre", "Genres", true), tokenManager)
	routes.RegisterReferenceRoutes(api, "/countries", handlers.NewReferenceHandler(countries, "Country", "Countries", true), tokenManager)
	routes.RegisterReferenceRoutes(api, "/languages", handlers.NewReferenceHandler(languages, "Language", "Languages", true), tokenManager)
	routes.RegisterReferenceRoutes(api, "/content-types", handlers.NewReferenceHandler(contentTypes, "Content type", "Content types", true), tokenManager)
	routes.RegisterReferenceRoutes(api, "/crew-roles", handlers.NewReferenceHandler(crewRoles, "Crew role", "Crew roles", true), tokenManager)
	routes.RegisterReferenceRoutes(api, "/award-categories", handlers.NewReferenceHandler(awardCategories, "Award category", "Award categories", true), tokenManager)

	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

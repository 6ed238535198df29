package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hirestack/recruit-api/internal/apperr"
	"hirestack/recruit-api/internal/config"
	"hirestack/recruit-api/internal/handlers"
	"hirestack/recruit-api/internal/repositories"
	"hirestack/recruit-api/internal/services"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repositories
	applicantRepo := repositories.NewApplicantRepository(db)
	jobPostRepo := repositories.NewJobPostRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	contextRepo := repositories.NewContextRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewRankingJobRepository(db)

	// Services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("failed to create upload directory: %v", err)
	}
	resumeParser := services.NewResumeParser()
	mailer := services.NewSMTPMailer(services.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Timeout:  cfg.SMTP.Timeout,
	})

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("failed to initialize Gemini client: %v", err)
	}

	resumeIndex, err := services.NewResumeIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("failed to initialize Qdrant: %v", err)
	}
	if err := resumeIndex.InitCollection(); err != nil {
		log.Fatalf("failed to initialize Qdrant collection: %v", err)
	}

	pipelineService := services.NewPipelineService(applicationRepo, applicantRepo, jobPostRepo)
	invitationService := services.NewInvitationService(invitationRepo, applicantRepo, interviewRepo, mailer, cfg.Server.BaseURL)
	contextService := services.NewContextService(contextRepo, documentRepo)
	rankerService := services.NewRankerService(geminiService, cfg.Worker.RetryMaxAttempts)
	chatService := services.NewChatService(contextRepo, geminiService, cfg.Worker.RetryMaxAttempts)
	screeningService := services.NewScreeningService(
		jobRepo,
		documentRepo,
		contextRepo,
		contextService,
		rankerService,
		geminiService,
		resumeIndex,
	)

	worker := services.NewWorker(jobRepo, screeningService, cfg.Worker.Concurrency)
	worker.Start(context.Background())

	// Handlers
	applicantHandler := handlers.NewApplicantHandler(applicantRepo)
	jobPostHandler := handlers.NewJobPostHandler(jobPostRepo)
	applicationHandler := handlers.NewApplicationHandler(pipelineService)
	interviewHandler := handlers.NewInterviewHandler(interviewRepo)
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	contextHandler := handlers.NewContextHandler(contextService, chatService, jobRepo, worker)
	uploadHandler := handlers.NewUploadHandler(documentRepo, applicantRepo, storageService, resumeParser, screeningService, cfg.Storage.MaxFileSize)

	app := fiber.New(fiber.Config{
		AppName:      "Recruit API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Candidate-facing: no session. Possession of the token is the
	// credential; room entry is gated separately.
	api.Get("/interviews/:id/invitations/validate", invitationHandler.HandleValidate)

	// Recruiter-facing
	authed := api.Group("", handlers.SessionMiddleware())

	authed.Post("/applicants", applicantHandler.HandleCreate)
	authed.Get("/applicants", applicantHandler.HandleList)
	authed.Get("/applicants/:id", applicantHandler.HandleGet)
	authed.Put("/applicants/:id", applicantHandler.HandleUpdate)
	authed.Delete("/applicants/:id", applicantHandler.HandleDelete)

	authed.Post("/job-posts", jobPostHandler.HandleCreate)
	authed.Get("/job-posts", jobPostHandler.HandleList)
	authed.Get("/job-posts/:id", jobPostHandler.HandleGet)
	authed.Put("/job-posts/:id", jobPostHandler.HandleUpdate)

	authed.Post("/applications", applicationHandler.HandleCreate)
	authed.Get("/applications", applicationHandler.HandleList)
	authed.Get("/applications/:id", applicationHandler.HandleGet)
	authed.Post("/applications/:id/transition", applicationHandler.HandleTransition)

	authed.Post("/interviews", interviewHandler.HandleCreate)
	authed.Get("/interviews", interviewHandler.HandleList)
	authed.Get("/interviews/:id", interviewHandler.HandleGet)
	authed.Put("/interviews/:id", interviewHandler.HandleUpdate)
	authed.Delete("/interviews/:id", interviewHandler.HandleDelete)
	authed.Get("/interviews/:id/invitations", invitationHandler.HandleList)

	authed.Post("/invitations", invitationHandler.HandleIssue)
	authed.Delete("/invitations/:invitationId", invitationHandler.HandleRevoke)

	authed.Post("/documents", uploadHandler.HandleUpload)

	authed.Post("/contexts", contextHandler.HandleCreate)
	authed.Get("/contexts", contextHandler.HandleList)
	authed.Get("/contexts/:id", contextHandler.HandleGet)
	authed.Delete("/contexts/:id", contextHandler.HandleDelete)
	authed.Post("/contexts/:id/documents", contextHandler.HandleAttachDocuments)
	authed.Post("/contexts/:id/rank", contextHandler.HandleRank)
	authed.Get("/contexts/:id/rankings", contextHandler.HandleListRankings)
	authed.Post("/contexts/:id/chats", contextHandler.HandleCreateChat)
	authed.Get("/contexts/:id/chats/:chatId", contextHandler.HandleGetChat)
	authed.Post("/contexts/:id/chats/:chatId/messages", contextHandler.HandleSendChatMessage)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("server forced to shutdown: %v", err)
		}
		if err := config.CloseDatabase(db); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := apperr.HTTPStatus(err)

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

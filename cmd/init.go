package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands"
	aicmd "github.com/Negosyo-Digital/platform-backend/internal/application/commands/ai"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/creator"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/file"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/payment"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/payout"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/publish"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/submission"
	"github.com/Negosyo-Digital/platform-backend/internal/application/commands/website"
	"github.com/Negosyo-Digital/platform-backend/internal/application/query"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/client/ai"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/hosting"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/lock"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/mail"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/storage"
	"github.com/Negosyo-Digital/platform-backend/internal/presentation/rest"
	"github.com/Negosyo-Digital/platform-backend/internal/presentation/scheduler"
	"github.com/Negosyo-Digital/platform-backend/pkg/db"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, relying on process environment")
	}

	// DB
	dbConfig := db.NewConfig()
	pool, err := pgxpool.New(context.Background(), dbConfig.GetDSN())
	if err != nil {
		log.Panicf("failed to create pool: %v", err)
	}
	if err = pool.Ping(context.Background()); err != nil {
		log.Panicf("failed to connect to db: %v", err)
	}
	uowFactory := db.NewUoWFactory(pool)

	// Configs
	hostingConfig := hosting.NewConfig()
	mailConfig := mail.NewMailConfig()
	paymentConfig := payment.NewPaymentConfig()
	outboxConfig := scheduler.NewOutboxConfig()

	mailServer := mail.NewMailServer(mailConfig)
	aiClient := ai.NewClient(ai.NewConfig())
	hostingClient := hosting.NewClient(hostingConfig)
	generationLock := lock.NewGenerationLock(lock.NewRedisClient())

	// AWS
	cfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Panic("can't load aws config", err)
	}
	s3 := storage.NewStorage(cfg)

	handlers := &application.Collection{
		CreateCreator:        creator.NewCreateCreator(uowFactory),
		UpdateCreatorStatus:  creator.NewUpdateCreatorStatus(uowFactory),
		CreateSubmission:     submission.NewCreateSubmission(uowFactory),
		UpdateSubmission:     submission.NewUpdateSubmission(uowFactory),
		Submit:               submission.NewSubmit(uowFactory),
		MarkInReview:         submission.NewMarkInReview(uowFactory),
		Approve:              submission.NewApprove(uowFactory),
		Reject:               submission.NewReject(uowFactory),
		Transcribe:           aicmd.NewTranscribe(uowFactory, aiClient),
		ExtractContent:       aicmd.NewExtractContent(uowFactory, aiClient),
		GenerateWebsite:      website.NewGenerateWebsite(uowFactory, generationLock),
		UpdateContent:        website.NewUpdateContent(uowFactory),
		UpdateCustomizations: website.NewUpdateCustomizations(uowFactory),
		PublishSite:          publish.NewPublishSite(uowFactory, hostingClient, hostingConfig.BaseDomain()),
		UnpublishSite:        publish.NewUnpublishSite(uowFactory, hostingClient),
		MarkPaid:             payout.NewMarkPaid(uowFactory),
		BulkMarkPaid:         payout.NewBulkMarkPaid(uowFactory),
		RequestPayout:        payout.NewRequestPayout(uowFactory),
		UploadFile:           file.NewUploadFile(uowFactory, s3, file.NewUploadConfig()),
		Payment:              payment.NewPayment(uowFactory, paymentConfig),
		GetCreator:           query.NewGetCreator(uowFactory),
		GetSubmission:        query.NewGetSubmission(uowFactory),
		ListSubmissions:      query.NewListSubmissions(uowFactory),
		GetWebsite:           query.NewGetWebsite(uowFactory),
		ListTemplates:        query.NewListTemplates(),
	}
	processors := &application.Processors{
		SendMail: commands.NewSendMail(mailServer, uowFactory),
	}

	server := rest.NewServer(handlers)
	app := fiber.New(fiber.Config{
		IdleTimeout: 5 * time.Second,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	server.RegisterRoutes(app)

	outboxPoller := scheduler.NewOutboxPoller(processors, uowFactory, outboxConfig)
	go outboxPoller.Start()

	go func() {
		if err := app.Listen(":8080"); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	outboxPoller.Stop()

	uowFactory.Pool.Close()
	fmt.Println("Fiber was successfully shutdown.")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arvanweb/sitecms/internal/common"
	"github.com/arvanweb/sitecms/internal/mailservice"
	"github.com/arvanweb/sitecms/internal/mediaservice"
	"github.com/arvanweb/sitecms/internal/postservice"
	"github.com/arvanweb/sitecms/internal/projectservice"
	"github.com/arvanweb/sitecms/internal/teamservice"
	"github.com/arvanweb/sitecms/internal/userservice"
)

type application struct {
	config *Config
	logger *slog.Logger

	postService    *postservice.PostService
	teamService    *teamservice.TeamService
	projectService *projectservice.ProjectService
	userService    *userservice.UserService
	mediaService   *mediaservice.MediaService
	mailService    *mailservice.MailService

	broker *common.MessageBroker
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	// Initialize the message broker
	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	// Setup the exchange, queue, and binding key
	err = common.SetupContentExchange(broker)
	if err != nil {
		logger.Error("failed to setup the content exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the object storage
	storage, err := mediaservice.NewMinioStorage(mediaservice.StorageConfig{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		UseSSL:    cfg.S3.UseSSL,
		PublicURL: cfg.S3.PublicURL,
	})
	if err != nil {
		logger.Error("failed to connect to the object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = storage.EnsureBucket(context.Background())
	if err != nil {
		logger.Error("failed to ensure the storage bucket", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A single shared cache keeps invalidation consistent across services.
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	// Initialize the services
	app := &application{
		config:         cfg,
		logger:         logger,
		postService:    postservice.NewPostService(db, cache, broker, logger, cfg.Content.DefaultAuthor, cfg.Content.WordsPerMinute),
		teamService:    teamservice.NewTeamService(db, cache, logger),
		projectService: projectservice.NewProjectService(db, cache, logger),
		userService:    userservice.NewUserService(db, cache, logger),
		mediaService:   mediaservice.NewMediaService(storage, logger),
		mailService:    mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Notify, cfg.Mail.Port, logger),
		broker:         broker,
	}

	// Create the initial admin account when the users table is empty.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = app.userService.Bootstrap(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		logger.Error("failed to bootstrap the admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the consumer
	go app.mailService.SendContactNotification()

	// Start the HTTP server
	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

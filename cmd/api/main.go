package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"skillbarter/internal/adapter/api"
	"skillbarter/internal/adapter/api/handler"
	apimiddleware "skillbarter/internal/adapter/api/middleware"
	"skillbarter/internal/adapter/api/router"
	"skillbarter/internal/adapter/repository"
	"skillbarter/internal/infrastructure/auth"
	"skillbarter/internal/infrastructure/media"
	"skillbarter/internal/infrastructure/websocket"
	"skillbarter/internal/usecase"
	"skillbarter/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account JSON from the environment wins (production);
	// otherwise fall back to a credentials file for local development.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	cloudinaryClient, err := media.NewCloudinaryClient(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	skillRepo := repository.NewFirestoreSkillRepository(firestoreClient)
	tradeRepo := repository.NewFirestoreTradeRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokenManager, cloudinaryClient)
	userUseCase := usecase.NewUserUseCase(userRepo, reviewRepo, chatRepo, cloudinaryClient)
	skillUseCase := usecase.NewSkillUseCase(skillRepo, userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, tradeRepo, wsManager)
	tradeUseCase := usecase.NewTradeUseCase(tradeRepo, skillRepo, userRepo, chatUseCase)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, tradeRepo, userRepo, skillRepo)

	handler.Setup(authUseCase, userUseCase, skillUseCase, tradeUseCase, chatUseCase, reviewUseCase, cfg.SessionCookie)
	handler.SetupHealthHandler(firestoreClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokenManager, userRepo, cfg.SessionCookie)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware, chatUseCase, cfg.SessionCookie)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

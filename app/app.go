package app

import (
	"fmt"
	"log"
	"os"

	"estampa-studio/app/controller"
	"estampa-studio/app/router"
	"estampa-studio/customize"
	"estampa-studio/db"
	"estampa-studio/repository"
	"estampa-studio/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	orderServiceURL := os.Getenv("ORDER_SERVICE_URL")
	if orderServiceURL == "" {
		return fmt.Errorf("ORDER_SERVICE_URL environment variable is not set")
	}

	// Get credentials path from environment variable
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS environment variable is not set")
	}

	// Initialize photo storage (Drive folder for customer photos)
	folderID := os.Getenv("DRIVE_UPLOAD_FOLDER_ID")
	if folderID == "" {
		log.Printf("⚠️  DRIVE_UPLOAD_FOLDER_ID not set, photos will be uploaded to the Drive root")
	}
	photoStorage, err := service.NewDrivePhotoStorage(credentialsPath, folderID)
	if err != nil {
		return err
	}

	// Initialize repositories and services
	productRepo := repository.NewProductRepository()
	sessionStore := repository.NewSessionStore()
	ingestService := service.NewIngestService()
	previewService := service.NewPreviewService()
	proofService := service.NewProofService(previewService)
	orderClient := service.NewOrderClient(orderServiceURL)

	// Drawing surfaces for the canvas pipeline
	surfaces := customize.SurfaceFactory(service.NewImagingSurface)

	// Create controllers
	controllers := &router.Controllers{
		Product: controller.NewProductController(productRepo),
		Customization: controller.NewCustomizationController(
			productRepo,
			sessionStore,
			ingestService,
			previewService,
			orderClient,
			photoStorage,
			surfaces,
		),
		Proof: controller.NewProofController(sessionStore, proofService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}

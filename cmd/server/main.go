package main

import (
	"log"
	"net/http"

	"studenthub/auth"
	"studenthub/config"
	"studenthub/db"
	"studenthub/db/mongo"
	"studenthub/db/postgres"
	"studenthub/handlers"
	"studenthub/repository"
	"studenthub/routes"
	"studenthub/utils"
)

func main() {
	cfg := config.LoadConfig()

	var userRepo repository.UserRepository
	var educationRepo repository.EducationRepository
	var postRepo repository.PostRepository

	switch cfg.DBType {
	case "postgres":
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pg.Disconnect()

		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		educationRepo = repository.NewPostgresEducationRepo(pg.Conn)
		postRepo = repository.NewPostgresPostRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer mg.Disconnect()

		userRepo = repository.NewMongoUserRepo(mg.Client)
		educationRepo = repository.NewMongoEducationRepo(mg.Client)
		postRepo = repository.NewMongoPostRepo(mg.Client)

	default:
		log.Fatalf("DB_TYPE %q not supported", cfg.DBType)
	}

	uploader, err := utils.NewR2Uploader(utils.R2Config{
		Bucket:          cfg.R2Bucket,
		AccountID:       cfg.R2AccountID,
		PublicBaseURL:   cfg.R2PublicURL,
		AccessKeyID:     cfg.R2AccessKey,
		SecretAccessKey: cfg.R2SecretKey,
	})
	if err != nil {
		log.Fatalf("object storage: %v", err)
	}

	authn := auth.NewAuthenticator(userRepo, cfg.JWTSecret)

	userHandler := &handlers.UserHandler{
		Repo:       userRepo,
		Uploads:    uploader,
		Secret:     []byte(cfg.JWTSecret),
		Production: cfg.Production,
	}
	educationHandler := &handlers.EducationHandler{Repo: educationRepo}
	postHandler := &handlers.PostHandler{Repo: postRepo, Uploads: uploader}
	adminHandler := &handlers.AdminHandler{
		Users:     userRepo,
		Education: educationRepo,
		Posts:     postRepo,
	}
	pdfHandler := &handlers.PDFHandler{Education: educationRepo}

	handler := routes.SetupRoutes(authn, userHandler, educationHandler,
		postHandler, adminHandler, pdfHandler, cfg.CORSOrigin)

	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal(err)
	}
}

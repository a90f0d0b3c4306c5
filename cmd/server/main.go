package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/config"
	"github.com/iliyamo/video-rental-store/internal/database"
	"github.com/iliyamo/video-rental-store/internal/handler"
	"github.com/iliyamo/video-rental-store/internal/middleware"
	"github.com/iliyamo/video-rental-store/internal/queue"
	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/router"
	"github.com/iliyamo/video-rental-store/internal/service"
	"github.com/iliyamo/video-rental-store/internal/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: nil disables the response cache and rate limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories.
	actors := repository.NewActorRepo(db)
	films := repository.NewFilmRepo(db)
	categories := repository.NewCategoryRepo(db)
	customers := repository.NewCustomerRepo(db)
	inventory := repository.NewInventoryRepo(db)
	rentals := repository.NewRentalRepo(db)
	filmActors := repository.NewFilmActorRepo(db)
	filmCategories := repository.NewFilmCategoryRepo(db)
	orders := repository.NewOrderRepo(db)
	staff := repository.NewStaffRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Services.
	actorSvc := service.NewActorService(actors)
	filmSvc := service.NewFilmService(films, actors, categories, inventory)
	categorySvc := service.NewCategoryService(categories, filmCategories)
	rentalSvc := service.NewRentalService(rentals, films, customers, service.PublishRentalCreated)

	// Handlers.
	authH := handler.NewAuthHandler(customers, staff, tokens, cfg)
	catalogH := handler.NewCatalogHandler(filmSvc, categorySvc, actorSvc)
	rentalH := handler.NewRentalHandler(rentalSvc, cfg.DefaultStaffID)
	ownerH := &handler.OwnerHandler{
		Films:      filmSvc,
		Categories: categorySvc,
		Actors:     actorSvc,
		Rentals:    rentalSvc,
		Inventory:  inventory,
		FilmActors: filmActors,
		Customers:  customers,
		Staff:      staff,
		Orders:     orders,
		StoreID:    cfg.StoreID,
	}

	e := echo.New()
	e.Validator = validation.New()

	// Rate limit everything before routing; cache only the catalog.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, rentalH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)

	// The consumer writes checkout events to logs/rental.log and keeps
	// reconnecting on broker failures; it never returns in practice.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

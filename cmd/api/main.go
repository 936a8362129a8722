package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/recetario-api/internal/application/auth"
	appingredient "github.com/jhoicas/recetario-api/internal/application/ingredient"
	apprecipe "github.com/jhoicas/recetario-api/internal/application/recipe"
	"github.com/jhoicas/recetario-api/internal/application/usecase"
	infraconvert "github.com/jhoicas/recetario-api/internal/infrastructure/convert"
	infraextract "github.com/jhoicas/recetario-api/internal/infrastructure/extract"
	infrapdf "github.com/jhoicas/recetario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/recetario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/recetario-api/internal/interfaces/http"
	"github.com/jhoicas/recetario-api/pkg/config"
	"github.com/jhoicas/recetario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	instructionRepo := postgres.NewInstructionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	servicesTimeout := time.Duration(cfg.Services.TimeoutSeconds) * time.Second
	converter := infraconvert.NewClient(cfg.Services.ConvertURL, cfg.Services.ConvertAPIKey, servicesTimeout)
	extractor := infraextract.NewClient(cfg.Services.ExtractURL, cfg.Services.ExtractAPIKey, servicesTimeout)

	ingredientUC := appingredient.NewUpdateUseCase(txRunner, converter)
	recipeUC := apprecipe.NewUseCase(txRunner, recipeRepo, ingredientRepo, instructionRepo, categoryRepo, ingredientUC)
	importUC := apprecipe.NewImportUseCase(extractor, recipeUC)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := apprecipe.NewPDFUseCase(recipeRepo, ingredientRepo, instructionRepo, pdfGenerator)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, recipeRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recetario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		RecipeUC:     recipeUC,
		ImportUC:     importUC,
		PDFUC:        pdfUC,
		IngredientUC: ingredientUC,
		CategoryUC:   categoryUC,
		UnitUC:       unitUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"log"

	"bankapp/internal/config"
	"bankapp/internal/handlers"
	"bankapp/internal/middleware"
	"bankapp/internal/repositories"
	"bankapp/internal/services/account"
	"bankapp/internal/services/auth"
	"bankapp/internal/services/card"
	"bankapp/internal/services/deposit"
	"bankapp/internal/services/notification"
	"bankapp/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers onto the app.
// It returns the deposit service so the caller can attach the maturity
// scheduler to it.
func SetupRoutes(app *fiber.App, db *gorm.DB, accountCache repositories.AccountCache) deposit.Service {
	repos := repositories.NewRegistry(db)
	uow := repositories.NewUnitOfWork(db)
	notifier := notification.NewService()

	authService := auth.NewService(repos.Users)
	accountService := account.NewService(repos, uow, accountCache)
	transferService := transfer.NewService(repos, uow, accountCache, transferConfig())
	cardService := card.NewService(repos, uow, accountCache)
	depositService := deposit.NewService(repos, uow, accountCache, notifier)

	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transferHandler := handlers.NewTransferHandler(transferService)
	cardHandler := handlers.NewCardHandler(cardService)
	depositHandler := handlers.NewDepositHandler(depositService)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the bankapp API",
			"version": "1.0.0",
		})
	})

	// Protected routes
	protected := api.Use(middleware.Auth)

	accounts := protected.Group("/accounts")
	accounts.Post("/", accountHandler.Open)
	accounts.Get("/", accountHandler.List)
	accounts.Post("/deposit", accountHandler.Deposit)
	accounts.Get("/:id", accountHandler.Get)

	transfers := protected.Group("/transfers")
	transfers.Post("/imps", transferHandler.IMPS)
	transfers.Post("/neft", transferHandler.NEFT)
	transfers.Get("/:reference", transferHandler.GetByReference)

	cards := protected.Group("/cards")
	cards.Post("/", cardHandler.Apply)
	cards.Get("/", cardHandler.List)
	cards.Post("/pay-bill", cardHandler.PayBill)
	cards.Post("/spend", cardHandler.Spend)
	cards.Post("/:id/activate", cardHandler.Activate)
	cards.Post("/:id/block", cardHandler.Block)
	cards.Post("/:id/unblock", cardHandler.Unblock)
	cards.Post("/:id/international", cardHandler.SetInternational)
	cards.Post("/:id/charges", cardHandler.AddCharge)

	deposits := protected.Group("/deposits")
	deposits.Post("/fd", depositHandler.CreateFD)
	deposits.Get("/fd", depositHandler.ListFDs)
	deposits.Get("/fd/:id", depositHandler.GetFD)
	deposits.Post("/fd/:id/cancel", depositHandler.CancelFD)
	deposits.Post("/rd", depositHandler.CreateRD)
	deposits.Get("/rd", depositHandler.ListRDs)
	deposits.Get("/rd/:id", depositHandler.GetRD)
	deposits.Post("/rd/:id/cancel", depositHandler.CancelRD)
	deposits.Post("/maturities/run", middleware.AdminOnly, depositHandler.RunMaturities)

	return depositService
}

// transferConfig reads the transfer limits from the environment.
func transferConfig() transfer.Config {
	return transfer.Config{
		SingleTransferLimit: limitFromEnv("SINGLE_TRANSFER_LIMIT", "200000"),
		DailyTransferLimit:  limitFromEnv("DAILY_TRANSFER_LIMIT", "500000"),
	}
}

func limitFromEnv(key, fallback string) decimal.Decimal {
	raw := config.GetEnv(key, fallback)
	limit, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("invalid %s value %q, using default %s", key, raw, fallback)
		limit, _ = decimal.NewFromString(fallback)
	}
	return limit
}

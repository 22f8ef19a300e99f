package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	AuthUC           *auth.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: registro y consulta públicos, mutaciones solo admin
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/nit/:nit", companyHandler.GetByNIT)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdministrador), companyHandler.Update)
	companies.Delete("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdministrador), companyHandler.Deactivate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; mutaciones solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdministrador), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdministrador), productHandler.Update)
	products.Put("/:id/price", RequireRole(entity.RoleAdministrador), productHandler.ChangePrice)
	products.Delete("/:id", RequireRole(entity.RoleAdministrador), productHandler.Deactivate)

	// Inventory (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/reorder", inventoryHandler.ListNeedingReorder)
	invGroup.Get("/products/:productId", inventoryHandler.GetByProduct)
	invGroup.Get("/products/:productId/movements", inventoryHandler.ListMovementsByProduct)
	invGroup.Put("/products/:productId/limits", RequireRole(entity.RoleAdministrador), inventoryHandler.UpdateLimits)
}

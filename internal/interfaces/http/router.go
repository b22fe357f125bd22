package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rescate-api/internal/application/auth"
	appbag "github.com/jhoicas/rescate-api/internal/application/bag"
	"github.com/jhoicas/rescate-api/internal/application/partner"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Resolver  *auth.IdentityResolver
	PartnerUC *partner.PartnerUseCase
	BagUC     *appbag.BagUseCase
	ReserveUC *appbag.ReserveUseCase
	Blob      blobStore
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)

	// Partners (público, para el banner del frontend)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	api.Get("/partners", partnerHandler.List)

	// Catálogo público y reserva anónima
	publicHandler := NewPublicHandler(deps.BagUC, deps.ReserveUC)
	public := api.Group("/public")
	public.Get("/bags", publicHandler.ListBags)
	public.Get("/bags/:id", publicHandler.GetBag)
	public.Post("/bags/:id/reserve", publicHandler.Reserve)

	// Rutas de partner (Bearer + rol partner)
	protected := api.Group("/", AuthMiddleware(deps.Resolver), RequirePartner())

	bagHandler := NewBagHandler(deps.BagUC)
	bags := protected.Group("/partner/bags")
	bags.Get("/", bagHandler.List)
	bags.Get("/counts", bagHandler.Counts)
	bags.Post("/", bagHandler.Create)
	bags.Put("/:id", bagHandler.Update)
	bags.Delete("/:id", bagHandler.Delete)
	bags.Patch("/:id/status", bagHandler.SetStatus)

	uploadHandler := NewUploadHandler(deps.Blob)
	protected.Post("/upload/image", uploadHandler.Image)
}

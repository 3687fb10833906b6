package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/handler"
	"github.com/Chiranjit680/FinAdvisor/internal/middleware"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

// ExemptPrefixes are the paths the auth gate lets through: registration,
// token issuance and health probes.
var ExemptPrefixes = []string{
	"/",
	"/health",
	"/user/create_profile",
	"/user/token",
}

// SetupRoutes composes the request pipeline and mounts every route. Order
// matters: rate limiting first (cheapest rejection), then the auth gate,
// then the logger innermost so it observes the final status.
func SetupRoutes(
	rl *middleware.RateLimiter,
	auth *middleware.AuthMiddleware,
	logger *zap.Logger,
	userH *handler.UserHandler,
	portfolioH *handler.PortfolioHandler,
	chatH *handler.ChatHandler,
	stockH *handler.StockHandler,
) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(rl.Middleware)
	r.Use(auth.Middleware)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusOK, "Welcome to the FinAdvisor API!")
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/user", func(g chi.Router) {
		g.Post("/create_profile", userH.CreateProfile)
		g.Post("/token", userH.Token)
		g.Get("/me", userH.Me)
		g.Get("/me/personal_info", userH.PersonalInfo)
		g.Post("/add_personal_details", userH.AddPersonalDetails)
	})

	r.Route("/portfolio/secure", func(g chi.Router) {
		g.Post("/add_portfolio", portfolioH.Add)
		g.Get("/my_portfolio", portfolioH.My)
		g.Put("/update_portfolio", portfolioH.Update)
	})

	r.Route("/chat", func(g chi.Router) {
		g.Post("/secure-advice", chatH.SecureAdvice)
		g.Get("/history", chatH.History)
		g.Post("/company-query", chatH.CompanyQuery)
	})

	r.Route("/stock", func(g chi.Router) {
		g.Get("/fetch_stock_data/{ticker}", stockH.FetchStockData)
		g.Get("/display_news/{ticker}", stockH.DisplayNews)
		g.Get("/sentiment/{ticker}", stockH.NewsSentiment)
		g.Post("/load_stock_data", stockH.LoadStockData)
		g.Put("/update_stock_data", stockH.LoadStockData)
	})

	return r
}

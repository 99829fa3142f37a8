// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	healthfeature "github.com/entrecabinet/cabinet/internal/app/features/health"
	transactionsfeature "github.com/entrecabinet/cabinet/internal/app/features/transactions"
	usersfeature "github.com/entrecabinet/cabinet/internal/app/features/users"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The cabinet API mounts three feature routers: health for load balancers,
// users for the income-receipt cabinet, and transactions for the free-text
// ledger.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CabinetMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(deps.CabinetMongoDatabase, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	transactionsHandler := transactionsfeature.NewHandler(deps.CabinetMongoDatabase, logger)
	r.Mount("/transactions", transactionsfeature.Routes(transactionsHandler))

	return r, nil
}

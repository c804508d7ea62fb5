package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/docs" // required to register swagger docs
	"backoffice/internal/auth"
	"backoffice/internal/domain/authz"
	"backoffice/internal/domain/rmas"
	"backoffice/internal/domain/roles"
	"backoffice/internal/domain/storage"
	"backoffice/internal/mailer"
	"backoffice/internal/ratelimiter"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	authz         *authz.Service
	rmaService    *rmas.Service
	rateLimiter   ratelimiter.Limiter
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	rmaRefSalt  string
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	fromEmail string
	mailtrap  mailTrapConfig
}

type mailTrapConfig struct {
	apiKey string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{app.config.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware)
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		// Everything below requires a resolved identity.
		r.Group(func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.RateLimiterMiddleware)

			r.Get("/me", app.currentIdentityHandler)
			r.Post("/logout", app.logoutHandler)

			r.Route("/users", func(r chi.Router) {
				r.Use(app.RequirePermission(roles.PermUserManage))
				r.Get("/", app.listUsersHandler)
				r.Post("/", app.createUserHandler)
				r.Route("/{userID}", func(r chi.Router) {
					r.Patch("/", app.updateUserHandler)
					r.Put("/suspend", app.suspendUserHandler)
					r.Put("/activate", app.activateUserHandler)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Use(app.RequirePermission(roles.PermRoleManage))
				r.Get("/", app.listRolesHandler)
				r.Post("/", app.createRoleHandler)
				r.Route("/{roleID}", func(r chi.Router) {
					r.Patch("/", app.updateRoleHandler)
					r.Delete("/", app.deleteRoleHandler)
				})
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(app.RequirePermission(roles.PermOrderRead))
				r.Get("/", app.listOrdersHandler)
				r.Route("/{orderID}", func(r chi.Router) {
					r.Get("/", app.getOrderHandler)
					r.Get("/returnable", app.orderReturnableHandler)
				})
			})

			r.Route("/rmas", func(r chi.Router) {
				r.With(app.RequirePermission(roles.PermRMARead)).Get("/", app.listRMAsHandler)
				r.With(app.RequirePermission(roles.PermRMACreate)).Post("/", app.createRMAHandler)
				r.Route("/{rmaID}", func(r chi.Router) {
					r.With(app.RequirePermission(roles.PermRMARead)).Get("/", app.getRMAHandler)
					r.With(app.RequirePermission(roles.PermRMAUpdate)).Patch("/", app.updateRMAHandler)
					r.With(app.RequirePermission(roles.PermRMAUpdate)).Put("/status", app.changeRMAStatusHandler)
					r.With(app.RequirePermission(roles.PermRMAComplete)).Post("/complete", app.completeRMAHandler)
					r.With(app.RequirePermission(roles.PermRMACancel)).Post("/cancel", app.cancelRMAHandler)
				})
			})

			r.Route("/products", func(r chi.Router) {
				r.With(app.RequirePermission(roles.PermInventoryRead)).Get("/", app.listProductsHandler)
				r.Route("/{productID}", func(r chi.Router) {
					r.With(app.RequirePermission(roles.PermInventoryRead)).Get("/", app.getProductHandler)
					r.With(app.RequirePermission(roles.PermInventoryAdjust)).Post("/stock", app.adjustStockHandler)
					r.With(app.RequirePermission(roles.PermInventoryAdjust)).Post("/image", app.uploadProductImageHandler)
				})
			})

			r.With(app.RequirePermission(roles.PermAuditRead)).Get("/audit", app.listAuditEventsHandler)
		})
	})
	return r
}

// healthCheckHandler godoc
//
//	@Summary		Health check
//	@Description	Reports service status, environment and version.
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
	}
	if err := app.jsonResponse(w, http.StatusOK, data); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nexuscampus/authcore/modules/accounts"
	"github.com/nexuscampus/authcore/modules/accounts/pgstore"
	"github.com/nexuscampus/authcore/pkg/config"
	"github.com/nexuscampus/authcore/pkg/cookie"
	"github.com/nexuscampus/authcore/pkg/email"
	"github.com/nexuscampus/authcore/pkg/environment"
	"github.com/nexuscampus/authcore/pkg/httpserver"
	"github.com/nexuscampus/authcore/pkg/logger"
	"github.com/nexuscampus/authcore/pkg/pg"
	"github.com/nexuscampus/authcore/pkg/secrethash"
	"github.com/nexuscampus/authcore/pkg/sessiontoken"
)

type appConfig struct {
	Env          environment.Environment `env:"APP_ENV" envDefault:"development"`
	JWTSecret    string                  `env:"JWT_SECRET,required"`
	JWTIssuer    string                  `env:"JWT_ISSUER" envDefault:"authcore"`
	ResetBaseURL string                  `env:"RESET_BASE_URL,required"`
}

func main() {
	var (
		appCfg  appConfig
		logCfg  logger.Config
		pgCfg   pg.Config
		mailCfg email.Config
		httpCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&logCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&mailCfg)
	config.MustLoad(&httpCfg)

	log := logger.NewFromConfig(logCfg)
	ctx := context.Background()

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "database connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	tokens, err := sessiontoken.New(appCfg.JWTSecret, sessiontoken.WithIssuer(appCfg.JWTIssuer))
	if err != nil {
		log.ErrorContext(ctx, "session token setup failed", logger.Error(err))
		os.Exit(1)
	}

	var sender email.Sender
	if mailCfg.PostmarkServerToken != "" {
		sender, err = email.NewPostmarkSender(mailCfg)
		if err != nil {
			log.ErrorContext(ctx, "postmark setup failed", logger.Error(err))
			os.Exit(1)
		}
	} else {
		log.InfoContext(ctx, "no postmark token configured, writing emails to disk",
			logger.Component("email"))
		sender = email.NewDevSender(mailCfg.DevOutputDir)
	}

	// Production serves browser clients cross-site, so the session cookie
	// needs Secure + SameSite=None; everywhere else Strict suffices.
	cookieOpts := []cookie.Option{}
	if appCfg.Env.IsProduction() {
		cookieOpts = append(cookieOpts,
			cookie.WithSecure(true),
			cookie.WithSameSite(http.SameSiteNoneMode),
		)
	}
	cookies := cookie.New(cookieOpts...)

	storage := pgstore.New(pool)
	svc := accounts.NewService(
		storage,
		secrethash.New(),
		tokens,
		accounts.NewMailer(sender, appCfg.ResetBaseURL),
		accounts.WithLogger(log),
	)

	devMode := appCfg.Env.IsDevelopment()
	handler := accounts.NewHandler(svc, cookies,
		accounts.WithHandlerLogger(log),
		accounts.WithHandlerDevMode(devMode),
	)
	guard := accounts.NewGuard(storage, tokens, cookies,
		accounts.WithGuardLogger(log),
		accounts.WithGuardDevMode(devMode),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(httpCfg.RequestTimeout))
	r.Get("/healthz", httpserver.HealthCheckHandler(log, pg.Healthcheck(pool)))
	r.Mount("/", accounts.Router(handler, guard))

	srv := httpserver.New(httpCfg, log)
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "http server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

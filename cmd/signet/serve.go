package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/signet/internal/config"
	authctl "github.com/dropDatabas3/signet/internal/http/controllers/auth"
	"github.com/dropDatabas3/signet/internal/http/router"
	svc "github.com/dropDatabas3/signet/internal/http/services/auth"
	"github.com/dropDatabas3/signet/internal/email"
	jwtx "github.com/dropDatabas3/signet/internal/jwt"
	"github.com/dropDatabas3/signet/internal/oauth"
	"github.com/dropDatabas3/signet/internal/observability/logger"
	"github.com/dropDatabas3/signet/internal/rate"
	"github.com/dropDatabas3/signet/internal/security/password"
	"github.com/dropDatabas3/signet/internal/store"
	"github.com/dropDatabas3/signet/internal/store/memory"
	"github.com/dropDatabas3/signet/internal/store/pg"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "signet",
	})
	defer logger.Sync()
	log := logger.L().With(logger.Component("cmd.serve"))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var sender email.Sender
	if cfg.SMTP.Host != "" {
		smtp := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		smtp.TLSMode = cfg.SMTP.TLS
		smtp.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = smtp
	} else {
		log.Warn("smtp host not configured, otp emails are logged only")
		sender = email.NopSender{}
	}

	hasher := password.NewHasher(cfg.Security.BcryptCost)
	issuer := jwtx.NewIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.SessionTTL())
	limiter := rate.NewLimiter(cfg.OTP.Rate.Limit, cfg.OTPRateWindow())

	otpSvc := svc.NewOTPService(svc.OTPDeps{
		Store: st, Sender: sender, Limiter: limiter, TTL: cfg.OTPTTL(),
	})
	services := svc.Services{
		OTP:      otpSvc,
		Register: svc.NewRegisterService(svc.RegisterDeps{Store: st, OTP: otpSvc, Hasher: hasher, Issuer: issuer}),
		Login:    svc.NewLoginService(svc.LoginDeps{Store: st, Hasher: hasher, Issuer: issuer}),
		Password: svc.NewPasswordService(svc.PasswordDeps{Store: st, OTP: otpSvc, Hasher: hasher, Issuer: issuer}),
		Social:   svc.NewSocialService(svc.SocialDeps{Store: st, Issuer: issuer}),
	}

	handler := router.New(router.Deps{
		Auth:  authctl.NewControllers(services, buildProviders(cfg), cfg.Providers.RedirectURL),
		Store: st,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Storage.Driver == "postgres" {
		if cfg.Storage.Postgres.Migrate {
			if err := pg.RunMigrations(ctx, cfg.Storage.DSN); err != nil {
				return nil, err
			}
		}
		return pg.New(ctx, pg.Config{
			DSN:          cfg.Storage.DSN,
			MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
		})
	}
	return memory.New(), nil
}

func buildProviders(cfg *config.Config) *oauth.Registry {
	var providers []oauth.Provider
	if p := cfg.Providers.Google; p.Enabled {
		providers = append(providers, oauth.NewGoogle(p.ClientID, p.ClientSecret, p.RedirectURL))
	}
	if p := cfg.Providers.Github; p.Enabled {
		providers = append(providers, oauth.NewGithub(p.ClientID, p.ClientSecret, p.RedirectURL))
	}
	if p := cfg.Providers.Microsoft; p.Enabled {
		providers = append(providers, oauth.NewMicrosoft(p.ClientID, p.ClientSecret, p.RedirectURL))
	}
	return oauth.NewRegistry(providers...)
}

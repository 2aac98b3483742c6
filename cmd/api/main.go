package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/NeroQue/course-generator-backend/internal/api"
	"github.com/NeroQue/course-generator-backend/internal/config"
	"github.com/NeroQue/course-generator-backend/internal/logging"
	"github.com/NeroQue/course-generator-backend/internal/services"
	"github.com/NeroQue/course-generator-backend/pkg/llm"
	"github.com/NeroQue/course-generator-backend/pkg/oauth"
	"github.com/NeroQue/course-generator-backend/pkg/session"
	"github.com/NeroQue/course-generator-backend/pkg/youtube"
)

// main entry point - sets up everything and starts the server
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "err", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal("Could not set up logging", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal("Server stopped with error", "err", err)
	}
	log.Info("Server stopped")
}

func run(ctx context.Context, cfg config.Config) error {
	store := session.NewStore(cfg.SessionFile)

	courses := services.NewCourseService(
		newGenerator(ctx, cfg),
		services.NewVideoService(newVideoSearcher(ctx, cfg), cfg.VideoSearchTimeout),
		services.CourseConfig{
			Timeout:     cfg.GenerationTimeout,
			Concurrency: cfg.EnrichmentConcurrency,
		},
	)
	chapters := services.NewChapterService(courses.Generator, cfg.GenerationTimeout)
	auth := services.NewAuthService(store, newIdentityProvider(cfg), cfg.PreVerifiedSessionTTL)

	// wire everything together
	server := api.NewServer(api.Options{
		Sessions:          store,
		Auth:              auth,
		Courses:           courses,
		Chapters:          chapters,
		MaxChapters:       cfg.MaxChapters,
		AllowedOrigins:    cfg.CORSAllowedOrigins,
		AuthFailClosed:    cfg.AuthFailClosed,
		AuthEnforceExpiry: cfg.AuthEnforceExpiry,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.StandardLog(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		store.SweepRoutine(ctx, cfg.SessionSweepInterval)
		return nil
	})

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newGenerator returns nil when no key is set, courses then use the templates
func newGenerator(ctx context.Context, cfg config.Config) llm.Generator {
	gen, err := llm.New(ctx, llm.Settings{
		Provider: cfg.GenerativeProvider,
		APIKey:   cfg.GenerativeAPIKey(),
		Model:    cfg.GenerativeModel(),
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Warn("No generative provider key set, courses will use templates", "provider", cfg.GenerativeProvider)
		} else {
			log.Error("Could not create generative provider, courses will use templates", "err", err)
		}
		return nil
	}

	log.Info("Generative provider ready", "provider", cfg.GenerativeProvider)
	return gen
}

// returns a nil interface, not a typed nil, when there's no key
func newVideoSearcher(ctx context.Context, cfg config.Config) services.VideoSearcher {
	client, err := youtube.New(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Warn("Video search disabled, chapters get placeholder videos", "err", err)
		return nil
	}
	return client
}

func newIdentityProvider(cfg config.Config) services.IdentityProvider {
	provider, err := oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	if err != nil {
		log.Warn("Google sign-in disabled, only client-verified users can sign in", "err", err)
		return nil
	}
	return provider
}

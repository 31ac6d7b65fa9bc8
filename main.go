package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theossalmeida/front-great-people/app"
	"github.com/theossalmeida/front-great-people/client"
	"github.com/theossalmeida/front-great-people/config"
	"github.com/theossalmeida/front-great-people/database"
	"github.com/theossalmeida/front-great-people/log"
	"github.com/theossalmeida/front-great-people/routes"
	"github.com/theossalmeida/front-great-people/routes/middlewares"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := database.NewSessions(db, cfg.SessionTTL)
	go purgeSessions(ctx, sessions)

	app := app.App{
		Sessions: sessions,
		API:      client.New(cfg.APIUrl),
		Config:   cfg,
		Now:      time.Now,
	}

	handler := routes.Wire(app, middlewares.NewUploadGuard(ctx))

	err = runServer(ctx, cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		// no read/write deadline: uploads and backend calls run to completion
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Listening on %s (backend %s)", cfg.Url(), cfg.APIUrl)
	return srv.ListenAndServe()
}

func purgeSessions(ctx context.Context, sessions *database.Sessions) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := sessions.Purge(ctx, now)
			if err != nil {
				log.Warn("main.sessions.purge:", err)
				continue
			}
			if n > 0 {
				log.Debugf("main.sessions.purge: %d expired", n)
			}
		}
	}
}

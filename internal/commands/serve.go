package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/punch/internal/auth"
	"github.com/balkashynov/punch/internal/security"
	"github.com/balkashynov/punch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Start the HTTP API on HTTP_ADDR (default :4000). Stops gracefully on SIGINT/SIGTERM.`,
	Run: withDB(func(cmd *cobra.Command, args []string, a *app) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(a.cfg, a.store, newAuthService(a)).NewHTTPServer()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("[http] listening on %s (env=%s)", srv.Addr, a.cfg.Env)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Printf("[http] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}),
}

func newAuthService(a *app) *auth.Service {
	return auth.NewService(
		a.store,
		security.NewHasher(a.cfg.BcryptCost),
		security.NewTokenProvider(a.cfg.JWTSecret, a.cfg.TokenTTL()),
	)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/deppfellow/storefront/internal/database"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/router"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// storefront serve: migrate, then serve HTTP until SIGINT or SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err = database.Migrate(migrateCtx, &log, cfg)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		srv, err := server.New(cfg, &log, loggerService)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		repos := repository.NewRepositories(srv)
		services := service.NewServices(srv, repos)
		handlers := handler.NewHandlers(srv, services)
		srv.SetupHTTPServer(router.NewRouter(srv, handlers))

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.Start()
		}()

		select {
		case err = <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
		case <-ctx.Done():
			log.Info().Msg("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("server forced to shutdown")
			return errors.Join(err, shutdownErr)
		}

		log.Info().Msg("server exited properly")
		return err
	},
}

// storefront routes: print the registered routes without connecting to
// any backing service.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		srv := &server.Server{Config: cfg, Logger: &log, LoggerService: loggerService}
		handlers := handler.NewHandlers(srv, service.NewServices(srv, repository.NewRepositories(srv)))
		routes := router.NewRouter(srv, handlers).Routes()

		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, r := range routes {
			fmt.Fprintf(w, "%s\t%s\n", r.Method, r.Path)
		}
		return w.Flush()
	},
}

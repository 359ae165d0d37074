package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/termfolio/internal/content"
	"github.com/ziadkadry99/termfolio/internal/db"
	"github.com/ziadkadry99/termfolio/internal/desk"
	"github.com/ziadkadry99/termfolio/internal/live"
	"github.com/ziadkadry99/termfolio/internal/revalidate"
	"github.com/ziadkadry99/termfolio/internal/server"
	"github.com/ziadkadry99/termfolio/internal/site"
	"github.com/ziadkadry99/termfolio/internal/theme"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Starts the HTTP server: the tiling desk at /, post and project pages,
RSS/JSON feeds, the sitemap, the revalidation endpoint and a live-reload
websocket.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("open", false, "open the site in a browser once listening")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}

	database, err := db.Open(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	lib, err := openContent(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	desks := desk.NewManager(database, deskOptions(cfg, cfg.Desk.Breakpoint, cfg.Desk.Gutter), cfg.Server.SessionTTL)
	go desks.Run(ctx, time.Minute)

	hub := live.NewHub(live.WithIdentity(func(r *http.Request) string {
		return desk.VisitorID(r.Context())
	}))
	defer hub.Close()
	desks.OnThemeChange(func(visitorID string, shown theme.State) {
		log.Debug("theme changed", "visitor", visitorID, "preset", shown.Preset, "accent", shown.Accent)
		hub.SendTo(visitorID, live.Event{Type: "theme"})
	})

	web, err := site.New(site.Options{
		Meta:       feedMeta(cfg),
		Content:    lib,
		Reloader:   lib,
		Desks:      desks,
		Audio:      &content.AudioProber{Base: cfg.Content.AudioBase},
		Breakpoint: cfg.Desk.Breakpoint,
	})
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	srv := server.New(server.Config{
		Port:            cfg.Server.Port,
		AllowAll:        cfg.Server.AllowAllOrigins,
		ContentLoadedAt: lib.LoadedAt,
	}, database)

	r := srv.Router()
	r.With(desk.Visitors).Get("/ws", hub.ServeHTTP)
	revalidate.RegisterRoutes(r, &revalidate.Handler{
		Secret: cfg.Server.RevalidateSecret,
		Pages:  web.Pages(),
		Store:  revalidate.NewStore(database),
		Hub:    hub,
	})
	web.RegisterRoutes(r)

	if cfg.Server.RevalidateSecret == "" {
		log.Warn("server.revalidate_secret is empty; /api/revalidate will refuse every request")
	}

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		hub.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	if open, _ := cmd.Flags().GetBool("open"); open {
		go site.OpenBrowser(fmt.Sprintf("http://localhost:%d/", cfg.Server.Port))
	}

	log.Info("termfolio starting",
		"version", Version,
		"port", cfg.Server.Port,
		"db", cfg.Server.DBPath,
		"posts", len(lib.Posts()),
		"projects", len(lib.Projects()),
	)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/pkg/auth"
	"folio/pkg/config"
	"folio/pkg/export"
	"folio/pkg/page"
	"folio/pkg/profile"
	"folio/pkg/sections"
	"folio/pkg/server"
	"folio/pkg/store"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listenAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the folio API server",
	Long: `Run the HTTP API that the admin front end uses to edit the profile
document and the page composition.

Every successful edit persists the full document and rewrites the JSON data
files under the configured content directory, where the static-site generator
picks them up.

Example:
  folio serve
  folio serve --listen 127.0.0.1:9000`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	// .env is optional; real config validation happens in config.Load.
	_ = godotenv.Load()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return err
	}

	log := newLogger()

	var st store.Store
	st, err = store.New(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		err = errors.Wrap(err, "failed to open document store")
		return err
	}
	defer st.Close()

	exporter := export.New(cfg.ContentDir, log)
	profiles := profile.NewRepository(st, exporter, log)
	pages := page.NewRepository(st, exporter, log)
	registry := sections.NewRegistry()

	var authService *auth.Service
	authService, err = auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		err = errors.Wrap(err, "failed to create auth service")
		return err
	}

	srv := server.New(profiles, pages, registry, authService, cfg.AdminPassword, log)

	// Prime the export files shortly after start so the site generator has
	// data before the first edit.
	scheduler, err := export.PrimeLater(
		time.Duration(cfg.ExportPrimeDelaySeconds)*time.Second,
		profiles, pages, exporter, log,
	)
	if err != nil {
		err = errors.Wrap(err, "failed to schedule export priming")
		return err
	}
	defer func() {
		_ = scheduler.Shutdown()
	}()

	// Shut the server down on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		fmt.Println("shutting down...")
		_ = srv.Shutdown()
	}()

	addr := listenAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	err = srv.Listen(addr)
	if err != nil {
		err = errors.Wrap(err, "server failed")
		return err
	}

	return err
}

// newLogger builds the process logger; --verbose enables debug output.
func newLogger() (log *logrus.Logger) {
	log = logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if getVerbose() {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

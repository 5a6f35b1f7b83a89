package cmd

import (
	"context"
	"fmt"
	"time"

	"folio/pkg/config"
	"folio/pkg/export"
	"folio/pkg/page"
	"folio/pkg/profile"
	"folio/pkg/store"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var exportContentDir string

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the JSON data files once and exit",
	Long: `Export both documents to the content directory without running the
server. Useful in site build pipelines.

Example:
  folio export
  folio export --content-dir ./public`,
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportContentDir, "content-dir", "", "Content directory (default from config)")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	_ = godotenv.Load()

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		return err
	}

	contentDir := exportContentDir
	if contentDir == "" {
		contentDir = cfg.ContentDir
	}

	log := newLogger()

	var st store.Store
	st, err = store.New(cfg.StoreBackend, cfg.DataDir)
	if err != nil {
		err = errors.Wrap(err, "failed to open document store")
		return err
	}
	defer st.Close()

	exporter := export.New(contentDir, log)
	profiles := profile.NewRepository(st, nil, log)
	pages := page.NewRepository(st, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	export.Prime(ctx, profiles, pages, exporter, log)

	fmt.Printf("Exported data files to %s\n", contentDir)
	return err
}

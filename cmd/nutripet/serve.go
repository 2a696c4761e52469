package nutripet

import (
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/saadjs/nutripet/internal/server"
	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pet dashboard API and metrics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.HTTPAddr
		}
		if cfg.LogLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withDB(func(sqldb *sql.DB) error {
			provider, err := service.ResolveProvider(sqldb, "", cfg.FoodProvider)
			if err != nil {
				return err
			}
			srv := server.New(server.Options{
				DB:            sqldb,
				Provider:      provider,
				Credentials:   credentialsFromConfig(),
				LookupTimeout: cfg.LookupTimeout,
				Searcher:      lookupSearcher,
			})
			return srv.ListenAndServe(ctx, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from NUTRIPET_HTTP_ADDR)")
}

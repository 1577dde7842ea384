package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sarchlab/modeline/modedb"
	"github.com/sarchlab/modeline/modeserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generators and the catalog over HTTP.",
	Long: "Serve the generators and the catalog over HTTP. Without a " +
		"database the catalog only lives as long as the server.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		open := cfg.OpenBrowser
		if cmd.Flags().Changed("open") {
			open, _ = cmd.Flags().GetBool("open")
		}

		b := modeserver.MakeBuilder().
			WithPortNumber(port).
			WithDefaultRefresh(cfg.Refresh).
			WithOpenBrowser(open)

		var catalog *modedb.Catalog
		if dbPath(cmd) != "" {
			var closeCatalog func()
			catalog, closeCatalog = openCatalog(cmd)
			defer closeCatalog()
		} else {
			catalog = modedb.NewCatalog(modedb.NewSequentialIDGenerator())
		}

		server := b.WithCatalog(catalog).Build()
		server.StartServer()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		<-ctx.Done()

		fmt.Fprintln(os.Stderr, "Shutting down.")

		if err := catalog.Flush(); err != nil {
			log.Printf("Error flushing catalog: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0,
		"Port to listen on, overrides MODELINE_PORT. 0 picks a random port.")
	serveCmd.Flags().Bool("open", false,
		"Open the server in a browser, overrides MODELINE_OPEN_BROWSER.")

	rootCmd.AddCommand(serveCmd)
}

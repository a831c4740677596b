package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the configured question source over HTTP",
	Long: `Expose POST /api/generate-question backed by the configured question source,
so other feprep instances can use it with --source http --source-url.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		src, label, err := buildSource(cmd, st)
		if err != nil {
			return err
		}
		if label == "http" {
			return fmt.Errorf("serve cannot proxy another server; use --source llm or bank")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := server.NewRouter(src, server.Options{AllowOrigins: origins})
		if err := server.Run(ctx, addr, r); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors", nil, "Allowed CORS origins (repeatable)")
}


package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/vocabagent/internal/config"
	"github.com/example/vocabagent/internal/database"
	"github.com/example/vocabagent/internal/gatekeeper"
	"github.com/example/vocabagent/internal/trigger"
	"github.com/spf13/cobra"
)

var daemonInterval time.Duration

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run a built-in calendar trigger in the foreground",
	Long: "Periodically invokes the gatekeeper from inside one long-lived\n" +
		"process. Useful where no external scheduler or login hook is set up.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		if err := database.Connect(cfg.DataDir); err != nil {
			log.Printf("Failed to open progress store: %v", err)
			return nil
		}
		defer database.Close()

		d := trigger.New(gatekeeper.New(cfg, sessionLauncher(cfg)), daemonInterval)
		if err := d.Start(); err != nil {
			log.Printf("Failed to start trigger daemon: %v", err)
			return nil
		}

		log.Printf("Trigger daemon started, firing every %s. Press Ctrl+C to stop.", daemonInterval)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		d.Stop()
		return nil
	},
}

func init() {
	daemonCmd.Flags().DurationVar(&daemonInterval, "every", 30*time.Minute,
		"how often to invoke the gatekeeper")
	rootCmd.AddCommand(daemonCmd)
}

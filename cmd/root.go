package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/config"
	"github.com/matheuskafuri/newsdesk/internal/credential"
	"github.com/matheuskafuri/newsdesk/internal/newsapi"
	"github.com/matheuskafuri/newsdesk/internal/store"
	"github.com/matheuskafuri/newsdesk/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "TUI news search and bookmarking client",
	Long:  "newsdesk searches world news from the terminal: run queries against the World News API, save searches, and star articles for later.",
	RunE:  runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsdesk %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	kv, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	creds := credential.NewStore(kv)
	client := newsapi.New(creds, cfg.Endpoint, cfg.Relay)

	return tui.Run(tui.RunOpts{
		Client:      client,
		Credentials: creds,
		Filters: newsapi.Filters{
			Language:      cfg.Defaults.Language,
			SourceCountry: cfg.Defaults.SourceCountry,
			Sentiment:     cfg.Defaults.Sentiment,
			SortBy:        cfg.Defaults.Sort,
		},
		SavedQueries: cfg.SavedQueries,
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

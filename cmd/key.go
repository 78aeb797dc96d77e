package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/config"
	"github.com/matheuskafuri/newsdesk/internal/credential"
	"github.com/matheuskafuri/newsdesk/internal/store"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the news API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API key locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentials(func(creds *credential.Store) error {
			if err := creds.Set(args[0]); err != nil {
				return err
			}
			fmt.Println("API key saved.")
			return nil
		})
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentials(func(creds *credential.Store) error {
			if err := creds.Clear(); err != nil {
				return err
			}
			fmt.Println("API key removed.")
			return nil
		})
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCredentials(func(creds *credential.Store) error {
			if _, ok := creds.Get(); ok {
				fmt.Println("An API key is configured.")
			} else {
				fmt.Println("No API key configured. Run: newsdesk key set <api-key>")
			}
			return nil
		})
	},
}

func withCredentials(fn func(*credential.Store) error) error {
	kv, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()
	return fn(credential.NewStore(kv))
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}

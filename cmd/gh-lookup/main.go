// gh-lookup resolves GitHub users from the command line: a single REST
// lookup by login, or bulk id-to-login resolution over the GraphQL API.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/teamtools/github-client/internal/config"
	"github.com/teamtools/github-client/pkg/github"
	"github.com/teamtools/github-client/pkg/logging"
)

var configFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:   "gh-lookup",
		Short: "Look up GitHub users via REST and GraphQL",
		Long: `gh-lookup is a small client for the GitHub API.

Authentication:
  Set the GITHUB_TOKEN environment variable, or put a token in the
  config file. Bulk resolution (the "usernames" command) requires a
  token; single-user lookup works without one.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to YAML config file")

	rootCmd.AddCommand(userCmd(), usernamesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, configures logging, and builds the client.
func setup() (*github.Client, error) {
	cfg := config.Default()
	if configFlag != "" {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
		Output: os.Stderr,
	})

	clientCfg := github.DefaultConfig(cfg.API.Token)
	if cfg.API.BaseURL != "" {
		clientCfg.BaseURL = cfg.API.BaseURL
	}
	if cfg.API.Timeout > 0 {
		clientCfg.Timeout = time.Duration(cfg.API.Timeout) * time.Second
	}

	return github.New(clientCfg)
}

func userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user <login>",
		Short: "Fetch a single user by login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := setup()
			if err != nil {
				return err
			}

			user, err := client.User(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(user)
		},
	}
}

func usernamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usernames <id>...",
		Short: "Resolve numeric user ids to logins in bulk",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, len(args))
			for i, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q", arg)
				}
				ids[i] = id
			}

			client, err := setup()
			if err != nil {
				return err
			}

			names, err := client.Usernames(cmd.Context(), ids)
			if err != nil {
				return err
			}

			resolved := slices.Sorted(maps.Keys(names))
			for _, id := range resolved {
				fmt.Printf("%d\t%s\n", id, names[id])
			}
			return nil
		},
	}
}

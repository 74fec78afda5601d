package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sportfinder",
		Short: "CLI client for the SportFinder API",
		Long: `sportfinder finds and organises pickup games from the command line.

It talks to the SportFinder API directly and keeps each profile's session
under ~/.sportfinder, so several accounts can be used side by side with --profile.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := NewClient(cfg)
			if err != nil {
				return err
			}
			client = c
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.APIURL, "api", cfg.APIURL, "API base URL (env: SPORTFINDER_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Home, "home", cfg.Home, "State directory (env: SPORTFINDER_HOME)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Profile, "profile", "p", cfg.Profile, "Session profile (env: SPORTFINDER_PROFILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RolePolicy, "role-policy", cfg.RolePolicy, "Role policy: strict, permissive (env: SPORTFINDER_ROLE_POLICY)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newGroupsCmd())
	rootCmd.AddCommand(newTurfsCmd())
	rootCmd.AddCommand(newNotificationsCmd())
	rootCmd.AddCommand(newProfileCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}

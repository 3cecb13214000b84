package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vinisman/ghctl/cmd/repo"
	"github.com/vinisman/ghctl/internal/config"
	"github.com/vinisman/ghctl/internal/github"
	"github.com/vinisman/ghctl/utils"
	"golang.org/x/time/rate"
)

type rootState struct {
	envFile    string
	configFile string

	cfg        *config.Config
	logger     *slog.Logger
	clientOpts []github.Option
	client     *github.Client
}

// NewRootCmd builds the ghctl command tree. Extra client options are applied
// after the ones derived from configuration.
func NewRootCmd(clientOpts ...github.Option) *cobra.Command {
	state := &rootState{clientOpts: clientOpts}

	cmd := &cobra.Command{
		Use:           "ghctl",
		Short:         "CLI tool for GitHub repositories management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), config.Options{
				EnvFile:    state.envFile,
				ConfigFile: state.configFile,
			})
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = utils.InitLogger(cmd.ErrOrStderr(), cfg.Debug)
			if cfg.TokenOrigin != "" {
				state.logger.Debug("Token resolved", "origin", cfg.TokenOrigin)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug logging")
	flags.String("token", "", "GitHub token (or env GHCTL_TOKEN, GITHUB_TOKEN, GH_TOKEN)")
	flags.String("base-url", "", "GitHub API base URL (or env GHCTL_BASE_URL)")
	flags.Int("max-workers", config.DefaultMaxWorkers, "maximum parallel requests for --input batches (or env GHCTL_MAX_WORKERS)")
	flags.Float64("rate-limit", 0, "maximum requests per second, 0 disables pacing (or env GHCTL_RATE_LIMIT)")
	flags.StringVar(&state.envFile, "env-file", "", "path to a .env file (default .env in the working directory when present)")
	flags.StringVar(&state.configFile, "config", "", "path to a config file (default ghctl.yaml in $HOME/.config/ghctl or the working directory)")

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(repo.NewRepoCmd(state.newClient))

	return cmd
}

// newClient builds the API client once per process from the loaded config.
func (s *rootState) newClient() (*github.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	if s.cfg == nil {
		return nil, fmt.Errorf("configuration is not loaded")
	}

	opts := []github.Option{
		github.WithBaseURL(s.cfg.BaseURL),
		github.WithLogger(s.logger),
		github.WithMaxWorkers(s.cfg.MaxWorkers),
	}
	if s.cfg.RateLimit > 0 {
		opts = append(opts, github.WithRateLimiter(rate.NewLimiter(rate.Limit(s.cfg.RateLimit), 1)))
	}
	opts = append(opts, s.clientOpts...)

	client, err := github.NewClient(github.StaticTokenSource(s.cfg.Token), opts...)
	if err != nil {
		return nil, err
	}
	s.client = client
	return client, nil
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"platter/internal/config"
	"platter/internal/discogs"
	"platter/internal/logging"
	"platter/internal/resolution"
)

type commandContext struct {
	configFlag *string
	verbose    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	effective := *cfg
	if c.verbose != nil && *c.verbose {
		effective.Logging.Level = "debug"
	}
	logger, err := logging.NewFromConfig(&effective)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logger, nil
}

// newResolver wires the Discogs client and resolver from configuration.
func (c *commandContext) newResolver() (*resolution.Resolver, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}

	client, err := discogs.New(cfg.Discogs.Token, cfg.Discogs.BaseURL,
		discogs.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}),
		discogs.WithUserAgent(cfg.Discogs.UserAgent),
		discogs.WithRateLimit(cfg.Discogs.RequestsPerMinute),
		discogs.WithRetry(cfg.Discogs.RetryAttempts, cfg.RetryDelay()),
		discogs.WithSearchCacheTTL(cfg.SearchCacheTTL()),
		discogs.WithLogger(logger),
	)
	if err != nil {
		logging.WarnEvent(logger, "discogs client initialization failed", "discogs_client_init_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify discogs.token in config or DISCOGS_TOKEN"),
			logging.String(logging.FieldImpact, "resolution cannot proceed"),
		)
		return nil, fmt.Errorf("create discogs client: %w", err)
	}

	return resolution.NewResolver(
		resolution.NewDiscogsCatalogue(client),
		resolution.WithLogger(logger),
		resolution.WithConcurrency(cfg.Resolution.Concurrency),
		resolution.WithItemTimeout(cfg.ItemTimeout()),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// readInput reads from the named file, or from the command's stdin when the
// argument is absent or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	path, err := config.ExpandPath(strings.TrimSpace(args[0]))
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ABOUTME: Root command and shared wiring from configuration to settings, logger and store
// ABOUTME: Every subcommand receives its dependencies through the app built before it runs

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"syndication-kit/core/extensions"
	"syndication-kit/core/extensions/builtin"
	"syndication-kit/core/interfaces"
	"syndication-kit/infrastructure/cache/memory"
	"syndication-kit/infrastructure/cache/redis"
	"syndication-kit/infrastructure/cache/sqlite"
	logruslogger "syndication-kit/infrastructure/logger/logrus"
	"syndication-kit/pkg/config"
)

// app holds what subcommands share
type app struct {
	configFile string
	minimize   bool

	cfg      *config.Config
	logger   interfaces.Logger
	settings *extensions.Settings
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "syndicate",
		Short:         "Work with namespace extensions in RSS and Atom documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML configuration file")
	root.PersistentFlags().BoolVar(&a.minimize, "minimize", false, "Write output without indentation")

	root.AddCommand(
		newInspectCmd(a),
		newRoundtripCmd(a),
		newDiscoverCmd(a),
		newGeoCmd(),
		newArchiveCmd(a),
		newRestoreCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configFile != "" {
		cfg, err = config.LoadFromFile(a.configFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if a.minimize {
		cfg.Syndication.Minimize = true
	}

	logger, err := logruslogger.NewFromConfig(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	settings, err := newSettings(cfg.Syndication, logger)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.settings = settings
	return nil
}

// newSettings builds extension settings. Naming extension kinds restricts loading to
// them, which requires auto-detection off.
func newSettings(cfg config.SyndicationConfig, logger interfaces.Logger) (*extensions.Settings, error) {
	settings := builtin.Settings()
	settings.AutoDetectExtensions = cfg.AutoDetect
	settings.MinimizeOutputSize = cfg.Minimize
	settings.Logger = logger

	for _, kind := range cfg.Extensions {
		reg, ok := settings.Registry.LookupKind(extensions.Kind(kind))
		if !ok {
			return nil, fmt.Errorf("unknown extension kind %q", kind)
		}
		settings.SupportedExtensions.Add(reg.Descriptor)
	}
	if settings.SupportedExtensions.Len() > 0 {
		settings.AutoDetectExtensions = false
	}
	return settings, nil
}

// openStore creates the configured document store and a function releasing it
func (a *app) openStore() (interfaces.Cache, func() error, error) {
	noop := func() error { return nil }

	switch a.cfg.Store.Type {
	case config.StoreRedis:
		store, err := redis.NewRedisCache(a.cfg.Store.Redis)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Info("Using Redis store", map[string]interface{}{
			"address": a.cfg.Store.Redis.Address,
		})
		return store, store.Close, nil
	case config.StoreSQLite:
		store, err := sqlite.NewSQLiteCacheWithLogger(a.cfg.Store.SQLite.Path, a.logger)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Info("Using SQLite store", map[string]interface{}{
			"path": a.cfg.Store.SQLite.Path,
		})
		return store, store.Close, nil
	default:
		a.logger.Warn("Using memory store; documents are lost when the process exits", nil)
		return memory.NewMemoryCache(), noop, nil
	}
}

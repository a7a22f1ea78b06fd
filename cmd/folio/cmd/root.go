package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/config"
	"github.com/rustyeddy/folio/internal/logging"
	"github.com/rustyeddy/folio/ledger"
	"github.com/rustyeddy/folio/persist"
)

const defaultConfigFile = "folio.yaml"

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Track holdings, trades and portfolio performance",
	Long: `Folio is a personal portfolio ledger.

It keeps:
  - Holdings with stop-loss, take-profit and trailing stops
  - A trade log with realized P/L
  - An equity history for drawdown tracking
  - A watchlist

State is saved after every change to a JSON file or a SQLite database.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	envFile  string
	logLevel string
	dataPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./folio.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with FOLIO_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "ledger file or database path (overrides config)")
}

// loadConfig resolves the configuration: file, then .env and FOLIO_*
// variables, then command-line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(envFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if dataPath != "" {
		cfg.Storage.Path = dataPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, cfg.Validate()
}

// session is one command's view of the ledger: the store restored from
// the configured backend, saving back on every change.
type session struct {
	cfg      *config.Config
	log      *logrus.Logger
	closeLog func() error
	store    *ledger.Store
	backend  persist.Backend
	saver    *persist.AutoSaver
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	ctx := logging.WithLogger(cmd.Context(), log)
	cmd.SetContext(ctx)

	backend, err := persist.Open(ctx, cfg.Storage)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := ledger.New()
	if err := persist.LoadInto(ctx, backend, store, cfg.Ledger.Settings()); err != nil {
		backend.Close()
		closeLog()
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	backendLog := log.WithFields(logrus.Fields{"backend": cfg.Storage.Type, "path": cfg.Storage.Path})
	saver := persist.NewAutoSaver(backend, backendLog)
	store.SetChangeListener(saver)
	backendLog.Debug("ledger loaded")

	return &session{cfg: cfg, log: log, closeLog: closeLog, store: store, backend: backend, saver: saver}, nil
}

func (s *session) currency() string {
	if c := s.store.Settings().Currency; c != "" {
		return c
	}
	return s.cfg.Ledger.Currency
}

// Close releases the backend and the log file, and reports a failed save,
// if any.
func (s *session) Close() error {
	saveErr := s.saver.Err()
	err := s.backend.Close()
	if cerr := s.closeLog(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if saveErr != nil {
		return fmt.Errorf("save ledger: %w", saveErr)
	}
	return nil
}

// withSession wraps a command body with openSession/Close.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Context() == nil {
			cmd.SetContext(context.Background())
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args, s)
	}
}

// printResult prints the outcome of an update by id. NotFound becomes an error.
func printResult(cmd *cobra.Command, what, key string, res ledger.Result) error {
	switch res {
	case ledger.NotFound:
		return fmt.Errorf("%s %s: %w", what, key, ledger.ErrNotFound)
	case ledger.Unchanged:
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s unchanged\n", what, key)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s updated\n", what, key)
	}
	return nil
}

package main

// Inspect GUPPI RAW headers and export them as FITS records.
//
// Usage:
//
//    guppihdr show HEADER      derived properties as YAML
//    guppihdr validate HEADER  report every missing or inconsistent key
//    guppihdr fits HEADER      80-character records ending in END
//
// where HEADER is a YAML mapping of keys to values, in record order, or a
// FITS file whose primary header is used.

import (
	"fmt"
	"io"
	"os"

	"github.com/jbrzusto/guppiraw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// app carries the state shared by the subcommands.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        appConfig
	logger     *zap.Logger
	create     func(name string) (io.WriteCloser, error) // opens the fits output file
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command { return newApp().rootCmd() }

func newApp() *app {
	return &app{v: viper.New(), logger: zap.NewNop(), create: createFile}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "guppihdr",
		Short:         "Inspect and export GUPPI RAW headers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: guppihdr.toml in /opt or .)")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))

	fitsCmd := &cobra.Command{
		Use:   "fits HEADER",
		Short: "Write a header as FITS records",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runFITS,
	}
	fitsCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	_ = a.v.BindPFlag("output", fitsCmd.Flags().Lookup("output"))

	root.AddCommand(
		&cobra.Command{
			Use:   "show HEADER",
			Short: "Print the telescope variant and derived properties",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runShow,
		},
		&cobra.Command{
			Use:   "validate HEADER",
			Short: "Check that every required key is present and consistent",
			Args:  cobra.ExactArgs(1),
			RunE:  a.runValidate,
		},
		fitsCmd,
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	found, err := loadConfig(a.v, a.configFile, &a.cfg)
	if err != nil {
		return fmt.Errorf("guppihdr: config: %w", err)
	}
	logger, err := newLogger(a.cfg.Log)
	if err != nil {
		return fmt.Errorf("guppihdr: logger: %w", err)
	}
	a.logger = logger
	if !found {
		a.logger.Debug("no config file found, using defaults")
	}
	return nil
}

func newLogger(cfg logConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

// load reads and resolves the header named on the command line.
func (a *app) load(path string) (*guppiraw.Header, error) {
	s, err := readHeaderFile(path, a.logger)
	if err != nil {
		a.logger.Error("failed to read header", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	h := guppiraw.Resolve(s)
	a.logger.Debug("resolved header",
		zap.String("path", path),
		zap.Stringer("variant", h.Variant()),
		zap.Int("keys", s.Len()))
	return h, nil
}

func (a *app) runShow(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), summarize(h))
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	err = h.Validate()
	for _, e := range multierr.Errors(err) {
		a.logger.Warn("invalid header", zap.String("path", args[0]), zap.Error(e))
		fmt.Fprintln(cmd.OutOrStdout(), e)
	}
	if err != nil {
		return fmt.Errorf("guppihdr: %s: %d problem(s)", args[0], len(multierr.Errors(err)))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", args[0], h.Variant())
	return nil
}

func (a *app) runFITS(cmd *cobra.Command, args []string) (err error) {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	var w io.Writer = cmd.OutOrStdout()
	out := a.cfg.Output
	if out != "-" && out != "" {
		f, cerr := a.create(out)
		if cerr != nil {
			return cerr
		}
		// a failed close can lose buffered records
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		w = f
	}
	n, err := h.WriteFITS(w)
	if err != nil {
		a.logger.Error("failed to write records", zap.String("output", out), zap.Error(err))
		return err
	}
	a.logger.Info("wrote header records",
		zap.String("output", out),
		zap.Int("records", h.Store().Len()+1),
		zap.Int64("bytes", n))
	return nil
}

func createFile(name string) (io.WriteCloser, error) { return os.Create(name) }

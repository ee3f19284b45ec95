package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yuanying/epub2text/internal/config"
	"github.com/yuanying/epub2text/internal/converter"
	"github.com/yuanying/epub2text/internal/logging"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"output":      "output",
	"library":     "library_dir",
	"no-import":   "no_import",
	"cover":       "cover",
	"cover-width": "cover_width",
	"log-level":   "log_level",
	"log-format":  "log_format",
	"log-dir":     "log_output_dir",
	"verbose":     "verbose",
}

// cliOptions is everything a command needs after flags, config file and
// environment have been merged.
type cliOptions struct {
	converter.ConvertOptions
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	closeLog   func() error
}

func (o *cliOptions) Close() error {
	if o.closeLog == nil {
		return nil
	}
	return o.closeLog()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epub2text [flags] <book.epub>",
		Short: "Extract the readable text of an EPUB book",
		Long: `epub2text reads an EPUB ebook, follows its reading order and writes the
text of every chapter to a plain text file, one blank line between chapters.

A copy of each converted book is kept in the library directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to config file (default: $HOME/.config/epub2text/config.*)")
	pf.String("library", config.DefaultLibraryDir(), "directory that receives a copy of each book")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")
	pf.String("log-dir", "", "directory to write JSON log files to in addition to stderr")
	pf.BoolP("verbose", "v", false, "enable debug logging (overrides --log-level)")

	f := rootCmd.Flags()
	f.StringP("output", "o", "", "output text file, - for stdout (default: input with .txt extension)")
	f.Bool("no-import", false, "do not copy the book into the library")
	f.String("cover", "", "write a JPEG thumbnail of the cover image to this path")
	f.Int("cover-width", config.DefaultCoverWidth, "maximum cover thumbnail width in pixels")

	rootCmd.AddCommand(newInspectCmd(), newImportCmd())
	return rootCmd
}

// loadConfig merges defaults, the config file, EPUB2TEXT_* environment
// variables and the flags that were set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	v := viper.New()
	for name, key := range flagKeys {
		if fl := lookupFlag(cmd, name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, "", err
			}
		}
	}

	var cfgFile string
	if fl := lookupFlag(cmd, "config"); fl != nil {
		cfgFile = fl.Value.String()
	}
	cfg, used, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}

// lookupFlag finds a flag declared on cmd or inherited from its parents,
// whether or not the flag sets have been merged by parsing yet.
func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if fl := cmd.Flags().Lookup(name); fl != nil {
		return fl
	}
	if fl := cmd.PersistentFlags().Lookup(name); fl != nil {
		return fl
	}
	return cmd.InheritedFlags().Lookup(name)
}

func readCLIOptions(cmd *cobra.Command, args []string) (*cliOptions, error) {
	cfg, used, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogOutputDir)
	if err != nil {
		return nil, fmt.Errorf("could not set up logging: %w", err)
	}
	if used != "" {
		logger.Debug("using config file", "path", used)
	}

	opts := &cliOptions{
		Config:     cfg,
		ConfigPath: used,
		Logger:     logger,
		closeLog:   closeLog,
	}
	if len(args) > 0 {
		outputPath := cfg.OutputFile
		if outputPath == "" {
			outputPath = defaultOutputPath(args[0])
		}
		opts.ConvertOptions = converter.ConvertOptions{
			InputPath:  args[0],
			OutputPath: outputPath,
			LibraryDir: cfg.LibraryDir,
			NoImport:   cfg.NoImport,
			CoverPath:  cfg.CoverFile,
			CoverWidth: cfg.CoverWidth,
			Stdout:     cmd.OutOrStdout(),
		}
	}
	return opts, nil
}

func defaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".txt"
}

func runConvert(cmd *cobra.Command, args []string) error {
	opts, err := readCLIOptions(cmd, args)
	if err != nil {
		return err
	}
	defer opts.Close()

	opts.Logger.Info("converting", "input", opts.InputPath, "output", opts.OutputPath)

	p := converter.NewPipeline(opts.ConvertOptions, opts.Logger)
	res, err := p.Convert(cmd.Context())
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	opts.Logger.Info("done",
		"title", res.Title,
		"output", res.OutputPath,
		"documents", res.Documents,
		"skipped", len(res.Skipped))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

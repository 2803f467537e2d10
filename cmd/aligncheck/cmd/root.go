// Package cmd implements the aligncheck command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/isawnyu/aligncheck/pkg/errors"
	"github.com/isawnyu/aligncheck/pkg/logging"
	"github.com/isawnyu/aligncheck/pkg/pleiades"
	"github.com/isawnyu/aligncheck/pkg/reconcile"
	"github.com/isawnyu/aligncheck/pkg/report"
	"github.com/isawnyu/aligncheck/pkg/wikidata"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aligncheck",
	Short: "Reconcile Pleiades and Wikidata gazetteer alignments",
	Long: `Aligncheck compares Pleiades citations of Wikidata with Wikidata
citations of Pleiades. It classifies every cross-reference as mutual or
one-directional, flags items that cite more than one place and places
cited by more than one item, and writes review files for curators.

The run is a single batch pass: load both datasets, reconcile, emit.
Any malformed input aborts the run before output is written.`,
	SilenceUsage: true,
	RunE:         runCompare,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.aligncheck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (progress at info level)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")

	rootCmd.Flags().StringP("index", "i", defaultIndexPath(), "path to the Pleiades->Wikidata index JSON file")
	rootCmd.Flags().StringP("data", "d", filepath.Join("data", "wd2all.csv"), "path to the Wikidata CSV/TSV file")
	rootCmd.Flags().StringP("output", "o", "data", "path to the output directory")
	rootCmd.Flags().StringP("date", "x", time.Now().Format("2006-01-02"), "date stamp used in the summary message")
	rootCmd.Flags().String("delimiter", "", "field delimiter of the data file: comma or tab (default inferred from extension)")

	for _, flag := range []string{"index", "data", "output", "date", "delimiter"} {
		if err := viper.BindPFlag(flag, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".aligncheck")
	}

	// Load .env files first (before Viper env binding).
	loadEnvFiles()

	viper.SetEnvPrefix("ALIGNCHECK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := logging.ResolveLevel(verbose, quiet)

	config := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if config.Format == "" {
		config.Format = "auto"
	}
	if config.Output == "" {
		config.Output = "stderr"
	}

	logging.Configure(config)
}

// runCompare is the whole pipeline: load both datasets, reconcile,
// emit the review files, print the summary.
func runCompare(cmd *cobra.Command, _ []string) error {
	indexPath := expandUser(viper.GetString("index"))
	dataPath := expandUser(viper.GetString("data"))
	outputDir := expandUser(viper.GetString("output"))
	dateStamp := viper.GetString("date")

	var exportOpts []wikidata.Option
	switch delimiter := viper.GetString("delimiter"); delimiter {
	case "":
		// Inferred from the data file extension.
	case "comma", ",":
		exportOpts = append(exportOpts, wikidata.WithDelimiter(','))
	case "tab", "\t":
		exportOpts = append(exportOpts, wikidata.WithDelimiter('\t'))
	default:
		return errors.NewConfigError("delimiter",
			fmt.Sprintf("unsupported delimiter %q (want comma or tab)", delimiter), nil)
	}

	index, err := pleiades.LoadIndex(indexPath)
	if err != nil {
		return err
	}

	export, err := wikidata.LoadExport(dataPath, exportOpts...)
	if err != nil {
		return err
	}

	result := reconcile.Reconcile(index, export)
	logging.Info().
		Int("bidirectional", result.Summary.Bidirectional).
		Int("pleiades_only", result.Summary.OnlyPleiades).
		Int("wikidata_only", result.Summary.OnlyWikidata).
		Msg("Reconciled alignments")

	emitter := report.NewEmitter(outputDir)
	if err := emitter.WriteAll(result, index, export); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), emitter.Summary(result, dateStamp))
	return nil
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// defaultIndexPath is the conventional location of the alignment index
// inside a pleiades.datasets checkout under the user's home directory.
func defaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("data", "indexes", "wikidata.json")
	}
	return filepath.Join(home, "Documents", "files", "P", "pleiades.datasets",
		"data", "indexes", "wikidata.json")
}

// expandUser resolves a leading ~ to the user's home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

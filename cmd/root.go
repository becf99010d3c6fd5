package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Devon-White/grader/internal/config"
	"github.com/Devon-White/grader/internal/fetcher"
	"github.com/Devon-White/grader/internal/grader"
)

// envPrefix namespaces environment overrides, e.g. GRADER_URL.
const envPrefix = "GRADER"

// errReported marks a failure whose diagnostic was already printed.
var errReported = errors.New("reported")

// NewRootCmd builds the grader command. Option precedence is: explicit
// flag, then GRADER_* environment variable, then flag default.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "grader",
		Short: "Check an HTML page for the presence of CSS selectors",
		Long: `grader loads a JSON array of CSS selectors from a checks file and reports,
for each selector, whether it matches at least one element of an HTML
document. The document is read from a local file or, when --url is given,
fetched over HTTP.

The report is a JSON object keyed by selector in sorted order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, loadConfig(v))
		},
	}

	flags := rootCmd.Flags()
	flags.StringP("checks", "c", config.DefaultChecksFile, "path to checks.json")
	flags.StringP("file", "f", config.DefaultHTMLFile, "path to index.html")
	flags.StringP("url", "u", "", "URL of HTML file (takes precedence over --file)")
	flags.String("format", config.FormatJSON, "report format: json or markdown")
	flags.StringP("output", "o", "", "write the report to this file instead of stdout")
	flags.String("user-agent", config.DefaultUserAgent, "User-Agent for --url requests")
	flags.Duration("timeout", config.DefaultTimeout, "HTTP timeout for --url requests; 0 waits indefinitely")
	flags.BoolP("verbose", "v", false, "verbose logging")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// BindPFlags only fails on a nil flag set.
	_ = v.BindPFlags(flags)

	return rootCmd
}

func loadConfig(v *viper.Viper) config.Config {
	return config.Config{
		ChecksFile: v.GetString("checks"),
		HTMLFile:   v.GetString("file"),
		URL:        v.GetString("url"),
		Format:     v.GetString("format"),
		Output:     v.GetString("output"),
		UserAgent:  v.GetString("user-agent"),
		Timeout:    v.GetDuration("timeout"),
		Verbose:    v.GetBool("verbose"),
	}
}

func newLogger(cmd *cobra.Command, verbose bool) *logrus.Entry {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(log)
}

func run(cmd *cobra.Command, cfg config.Config) error {
	log := newLogger(cmd, cfg.Verbose)
	out := cmd.OutOrStdout()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	err := grader.Run(ctx, &cfg, out, log)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, config.ErrMissingFile):
		fmt.Fprintln(out, err.Error())
		return fmt.Errorf("%w: %w", errReported, err)
	case errors.Is(err, fetcher.ErrFetch):
		log.WithError(err).Debug("Fetch failed")
		fmt.Fprintln(out, "Invalid URL")
		return fmt.Errorf("%w: %w", errReported, err)
	default:
		return err
	}
}

// Execute runs the root command. Any returned error means the process should
// exit with status 1; diagnostics have already been printed.
func Execute() error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"riftrewind/pkg/matchstats"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type summarizeOptions struct {
	puuid         string
	minGames      int
	top           int
	timezone      string
	timezoneLabel string
	asJSON        bool
}

func newSummarizeCmd() *cobra.Command {
	opts := &summarizeOptions{}

	summarizeCmd := &cobra.Command{
		Use:   "summarize <dir>",
		Short: "Summarize the match payloads of a directory",
		Long: `Read every *.json match-v5 payload of the directory, in file name order,
and print the recap of the given player. Payloads the player didn't take part in are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	flags := summarizeCmd.Flags()
	flags.StringVar(&opts.puuid, "puuid", "", "puuid of the player")
	flags.IntVar(&opts.minGames, "min-games", 5, "minimum games for a champion to be ranked")
	flags.IntVar(&opts.top, "top", 10, "number of ranked champions")
	flags.StringVar(&opts.timezone, "timezone", "America/New_York", "timezone used for the months and hours")
	flags.StringVar(&opts.timezoneLabel, "timezone-label", "ET", "label of the timezone")
	flags.BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	summarizeCmd.MarkFlagRequired("puuid")

	return summarizeCmd
}

func runSummarize(out io.Writer, errOut io.Writer, dir string, opts *summarizeOptions) error {
	if opts.minGames < 1 || opts.top < 1 {
		return errors.New("--min-games and --top must be at least 1")
	}

	location, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
	}

	files, err := payloadFiles(dir)
	if err != nil {
		return err
	}

	logger := newCLILogger(errOut)
	normalizer := matchstats.NewNormalizer(logger, nil)
	aggregator := matchstats.NewAggregator(matchstats.Options{
		Logger:        logger,
		Location:      location,
		TimezoneLabel: opts.timezoneLabel,
		MinGames:      opts.minGames,
		TopN:          opts.top,
	})

	skipped := 0
	for _, file := range files {
		payload, err := os.ReadFile(file)
		if err != nil {
			logger.Errorf("Couldn't read %s: %v", file, err)
			skipped++
			continue
		}

		record, ok := normalizer.Normalize(payload, opts.puuid)
		if !ok {
			skipped++
			continue
		}
		aggregator.Add(record)
	}

	summary := aggregator.Summarize()
	if opts.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	fmt.Fprintf(out, "\n=== Recap of %s ===\n", opts.puuid)
	fmt.Fprintf(out, "  Files read    : %d\n", len(files))
	fmt.Fprintf(out, "  Skipped       : %d\n", skipped+aggregator.Skipped())
	return printSummary(out, &summary)
}

// The JSON files of the directory, sorted by name.
func payloadFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Logger printing the skipped payloads.
type cliLogger struct {
	log zerolog.Logger
}

func newCLILogger(w io.Writer) cliLogger {
	return cliLogger{log: zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(zerolog.WarnLevel)}
}

func (l cliLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l cliLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arbordale/biblio/internal/biblio"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func parseSlogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func buildLogger(writer io.Writer, levelStr string, format string) *slog.Logger {
	level := parseSlogLevel(levelStr)
	format = strings.ToLower(strings.TrimSpace(format))
	removeTime := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		return a
	}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(writer, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: removeTime,
		})
	}
	return slog.New(handler)
}

func validateLogOptions(level, format string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid --log-level %q (expected error/warn/info/debug)", level)
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q (expected text/json)", format)
	}
	return nil
}

func printMetadata(w io.Writer, path string, core *biblio.Core) error {
	ft, err := core.IdentifyFile(path)
	if err != nil {
		if errors.Is(err, biblio.ErrUnknownFileType) {
			fmt.Fprintf(w, "%s: not an ebook file\n", path)
			return nil
		}
		return err
	}

	meta, err := core.ReadProcessedMetadata(path)
	if err != nil {
		if errors.Is(err, biblio.ErrUnsupportedOperation) {
			fmt.Fprintf(w, "%s: %s (no metadata reader registered)\n", path, ft.Description)
			return nil
		}
		return err
	}

	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  type:      %s\n", ft.Description)
	fmt.Fprintf(w, "  title:     %s\n", meta.Title)
	if len(meta.Authors) > 0 {
		fmt.Fprintf(w, "  authors:   %s\n", strings.Join(meta.Authors, "; "))
	}
	if meta.Publisher != "" {
		fmt.Fprintf(w, "  publisher: %s\n", meta.Publisher)
	}
	if len(meta.Languages) > 0 {
		fmt.Fprintf(w, "  language:  %s\n", strings.Join(meta.Languages, ", "))
	}
	if meta.Series != "" {
		if meta.HasSeriesIndex {
			fmt.Fprintf(w, "  series:    %s [%g]\n", meta.Series, meta.SeriesIndex)
		} else {
			fmt.Fprintf(w, "  series:    %s\n", meta.Series)
		}
	}
	if len(meta.Identifiers) > 0 {
		schemes := make([]string, 0, len(meta.Identifiers))
		for scheme := range meta.Identifiers {
			schemes = append(schemes, scheme)
		}
		sort.Strings(schemes)
		for _, scheme := range schemes {
			fmt.Fprintf(w, "  identifier:%s=%s\n", scheme, meta.Identifiers[scheme])
		}
	}
	if len(meta.Subjects) > 0 {
		fmt.Fprintf(w, "  tags:      %s\n", strings.Join(meta.Subjects, ", "))
	}
	if meta.HasPublishDate() {
		fmt.Fprintf(w, "  published: %s\n", meta.PublishDate.Format("2006-01-02"))
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:     "bibliometa [files...]",
		Version: version,
		Short:   "Identify ebook files and print their bibliographic metadata",
		Long: `bibliometa identifies each given file by its leading bytes and, for
files recognized as ebooks, decodes and prints their title, authors,
and other bibliographic fields.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLogOptions(logLevel, logFormat); err != nil {
				return err
			}
			logger := buildLogger(os.Stderr, logLevel, logFormat)
			slog.SetDefault(logger)

			core := biblio.Default()
			failed := false
			for _, path := range args {
				if err := printMetadata(cmd.OutOrStdout(), path, core); err != nil {
					logger.Error("reading metadata", "path", path, "error", err)
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("one or more files failed")
			}
			return nil
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf("bibliometa %s (commit: %s, built: %s)\n", version, commit, date))
	cmd.SetErr(os.Stderr)
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (error/warn/info/debug)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log output format (text/json)")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

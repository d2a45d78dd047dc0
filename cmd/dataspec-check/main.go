// Command dataspec-check validates data specification documents (.json,
// .yaml) against the JSON Schema and the sort, symbol and equation rules.
//
// Usage:
//
//	dataspec-check [flags] file1.json [file2.yaml ...]
//	dataspec-check version
//
// Exit codes:
//
//	0  All files are valid (no errors; warnings may be present unless --strict)
//	1  One or more files have validation errors (or warnings with --strict)
//	2  Input or parse error (missing file, invalid JSON or YAML, bad flags)
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foundry-zero/dataspec/internal/checker"
	"github.com/foundry-zero/dataspec/internal/report"
)

const (
	version = "0.1.0"
	appName = "dataspec-check"
)

type options struct {
	format     string
	quiet      bool
	strict     bool
	schemaOnly bool
	rules      string
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return execute(args, os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	exitCode := 0
	cmd := rootCmd(&exitCode)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return exitCode
}

func rootCmd(exitCode *int) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   appName + " [flags] file...",
		Short: "Validate data specification documents",
		Long: `dataspec-check validates documents declaring sorts, aliases, constructors,
mappings and equations. Each document is checked against the JSON Schema,
then lowered to a specification and run through the semantic rules.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, files []string) error {
			code, err := check(cmd, files, opts)
			*exitCode = code
			return err
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress output (exit code only)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&opts.schemaOnly, "schema-only", false, "Run schema validation only, skip semantic passes")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "Comma-separated rule IDs or families (e.g. SORT-01,SYM)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
		},
	})

	return cmd
}

func check(cmd *cobra.Command, files []string, opts options) (int, error) {
	if opts.format != "text" && opts.format != "json" {
		return 2, fmt.Errorf("invalid format %q (use text or json)", opts.format)
	}
	level, err := parseLevel(opts.logLevel)
	if err != nil {
		return 2, err
	}

	c, err := checker.NewChecker(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	if err != nil {
		return 2, err
	}

	ruleFilter, err := parseRuleFilter(opts.rules, c.Rules())
	if err != nil {
		return 2, fmt.Errorf("invalid --rules value: %w", err)
	}

	checkOpts := checker.CheckOptions{
		SchemaOnly: opts.schemaOnly,
		Rules:      ruleFilter,
		Strict:     opts.strict,
	}

	exitCode := 0
	var reports []*report.Report
	for _, path := range files {
		r := c.Check(path, checkOpts)
		reports = append(reports, r)

		switch {
		case r.HasRule(checker.RuleInput):
			exitCode = max(exitCode, 2)
		case r.HasErrors():
			exitCode = max(exitCode, 1)
		case checkOpts.Strict && r.HasWarnings():
			exitCode = max(exitCode, 1)
		}
	}

	if !opts.quiet {
		if err := printReports(cmd.OutOrStdout(), reports, opts.format); err != nil {
			return 2, err
		}
	}
	return exitCode, nil
}

// printReports writes the reports in the given format. JSON output is a
// single object for one file and an array otherwise.
func printReports(w io.Writer, rs []*report.Report, format string) error {
	if format == "text" {
		for _, r := range rs {
			fmt.Fprint(w, report.FormatText(r))
		}
		return nil
	}

	var (
		data []byte
		err  error
	)
	if len(rs) == 1 {
		data, err = report.FormatJSON(rs[0])
	} else {
		data, err = report.FormatJSONAll(rs)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

// parseRuleFilter parses a comma-separated list of rule IDs or families.
// Examples: "SORT-01", "SYM", "SORT-02,EQN". Each entry must name a known
// rule or the family of one.
func parseRuleFilter(s string, known []string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var rules []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !knownRule(part, known) {
			return nil, fmt.Errorf("unknown rule %q", part)
		}
		rules = append(rules, part)
	}
	return rules, nil
}

func knownRule(rule string, known []string) bool {
	switch rule {
	case checker.RuleInput, checker.RuleSchema, checker.RuleDeclaration:
		return true
	}
	for _, k := range known {
		if k == rule || strings.HasPrefix(k, rule+"-") {
			return true
		}
	}
	return false
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altinukshini/ci-downloader/cmd/ci-downloader/internal/clierr"
	"github.com/altinukshini/ci-downloader/internal/history"
	"github.com/altinukshini/ci-downloader/internal/model"
	"github.com/altinukshini/ci-downloader/internal/search"
)

func newHistoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, record or clear Repro / Not Repro verdicts",
	}
	cmd.AddCommand(newHistoryListCmd(opts))
	cmd.AddCommand(newHistoryRecordCmd(opts))
	cmd.AddCommand(newHistoryClearCmd(opts))
	return cmd
}

func newHistoryListCmd(opts *options) *cobra.Command {
	var grep string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			lines, err := e.history.Lines()
			if err != nil {
				return err
			}
			if grep != "" {
				lines = search.Filter(lines, search.Parse(grep))
			}
			if len(lines) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "no entries in %s\n", e.history.Path())
				return nil
			}

			tp := newTable(cmd.OutOrStdout())
			tp.AddHeader([]string{"COMMIT", "BUILD", "VERDICT"})
			for _, line := range lines {
				entry, ok := history.ParseEntry(line)
				if !ok {
					// Hand-edited or foreign lines are shown as-is.
					tp.AddField(line)
					tp.AddField("")
					tp.AddField("")
					tp.EndRow()
					continue
				}
				tp.AddField(entry.CommitHash)
				tp.AddField(entry.Digits)
				tp.addVerdict(entry.Verdict)
				tp.EndRow()
			}
			return tp.Render()
		},
	}
	cmd.Flags().StringVarP(&grep, "grep", "g", "", "only lines matching the pattern (prefix ~ for a regular expression)")
	return cmd
}

func newHistoryRecordCmd(opts *options) *cobra.Command {
	var commit, uri, verdict string

	cmd := &cobra.Command{
		Use:     "record",
		Short:   "Append a verdict for a download URI",
		Example: `  ci-downloader history record --commit 3f2a9c1 --uri https://host/builds/1245/img.zip --verdict repro`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVerdict(verdict)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, err)
			}
			commit, uri := strings.TrimSpace(commit), strings.TrimSpace(uri)
			if commit == "" || uri == "" {
				return clierr.Newf(clierr.CodeUsage, "--commit and --uri must not be empty")
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			entry := history.NewEntry(commit, uri, v)
			if err := e.history.Record(entry); err != nil {
				return err
			}
			e.logger.Debug("verdict recorded", "line", entry.String(), "file", e.history.Path())
			fmt.Fprintln(cmd.OutOrStdout(), entry.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&commit, "commit", "c", "", "commit SHA")
	cmd.Flags().StringVarP(&uri, "uri", "u", "", "resolved download URI")
	cmd.Flags().StringVar(&verdict, "verdict", "", "repro or not-repro")
	_ = cmd.MarkFlagRequired("commit")
	_ = cmd.MarkFlagRequired("uri")
	_ = cmd.MarkFlagRequired("verdict")
	return cmd
}

func newHistoryClearCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Truncate the history file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return clierr.Newf(clierr.CodeUsage, "refusing to clear history without --yes")
			}
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.history.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", e.history.Path())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func parseVerdict(s string) (model.Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repro":
		return model.VerdictRepro, nil
	case "not-repro", "not repro", "notrepro":
		return model.VerdictNotRepro, nil
	default:
		return "", fmt.Errorf("invalid verdict %q (want repro or not-repro)", s)
	}
}

package commands

import (
	"context"
	"fmt"

	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/altinukshini/ci-downloader/cmd/ci-downloader/internal/clierr"
	"github.com/altinukshini/ci-downloader/internal/model"
	"github.com/altinukshini/ci-downloader/internal/resolver"
)

func newResolveCmd(opts *options) *cobra.Command {
	var q model.SearchQuery
	var open bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the download URI of a CI build",
		Example: `  ci-downloader resolve --device austin --commit 3f2a9c1
  ci-downloader resolve --device tvref --commit 3f2a9c1 --tv-brand tcl-tcl --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx := cmd.Context()
			if e.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
				defer cancel()
			}

			artifact, err := e.resolver.Resolve(ctx, q)
			if err != nil {
				return clierr.Wrap(exitCodeFor(resolver.KindOf(err)), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), artifact.DownloadURI)

			if open {
				b := browser.New("", cmd.OutOrStdout(), cmd.ErrOrStderr())
				if err := b.Browse(artifact.DownloadURI); err != nil {
					return fmt.Errorf("open browser: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.Device, "device", "d", "", "device (CI job) name")
	cmd.Flags().StringVarP(&q.CommitHash, "commit", "c", "", "commit SHA")
	cmd.Flags().StringVarP(&q.BrandFilter, "tv-brand", "b", "", "TV brand substring to match in result URIs")
	cmd.Flags().BoolVar(&open, "open", false, "open the download URI in the default browser")
	_ = cmd.MarkFlagRequired("device")
	_ = cmd.MarkFlagRequired("commit")
	return cmd
}

func exitCodeFor(k resolver.Kind) int {
	switch k {
	case resolver.KindInvalidInput:
		return clierr.CodeUsage
	case resolver.KindTransport:
		return clierr.CodeTransport
	case resolver.KindStatus:
		return clierr.CodeStatus
	case resolver.KindNoData, resolver.KindNoMatch, resolver.KindNoDownloadURI:
		return clierr.CodeNotFound
	default:
		return clierr.CodeFailure
	}
}

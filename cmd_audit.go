package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mouldsite/internal/config"
	"mouldsite/internal/logger"
	"mouldsite/internal/web"

	"github.com/spf13/cobra"
)

var errDrift = errors.New("location registry and page table disagree")

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check that every suburb has a location page",
	Long: `Compares the suburb registry with the compiled location page table and
lists suburbs without a page and pages without a suburb. Exits non-zero on
any mismatch.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print sitemap.xml for the configured root URL",
	Args:  cobra.NoArgs,
	RunE:  runSitemap,
}

func runAudit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(config.Load(), discardLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	drift := a.catalog.Audit()
	fmt.Fprintf(out, "suburbs: %d\n", a.registry.Len())
	for _, slug := range drift.MissingPages {
		fmt.Fprintf(out, "missing page: %s\n", slug)
	}
	for _, identifier := range drift.OrphanPages {
		fmt.Fprintf(out, "orphan page: %s\n", identifier)
	}
	if !drift.Empty() {
		return errDrift
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func runSitemap(cmd *cobra.Command, _ []string) error {
	a, err := newApp(config.Load(), discardLogger())
	if err != nil {
		return err
	}
	return web.WriteSitemap(cmd.OutOrStdout(), a.cfg.RootURL, a.registry)
}

// discardLogger keeps one-shot commands quiet so their stdout stays parseable.
func discardLogger() *slog.Logger {
	return logger.New(io.Discard, "error", "")
}

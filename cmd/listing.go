package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pexels/filter"
	"github.com/s0up4200/pexels/pexels"
)

// listingFlags are shared by every command that pages through results
type listingFlags struct {
	perPage int
	page    int
	pages   int
	filter  string
}

var listing = listingFlags{pages: 1}

func addListingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVar(&listing.perPage, "per-page", 0, "results per page (default from config)")
	cmd.PersistentFlags().IntVar(&listing.page, "page", 0, "page to start from (default from config)")
	cmd.PersistentFlags().IntVar(&listing.pages, "pages", 1, "number of pages to fetch by following the next-page link")
	cmd.PersistentFlags().StringVarP(&listing.filter, "filter", "f", "", "filter expression applied to each result")
}

func (l listingFlags) requestOptions() []pexels.RequestOption {
	return []pexels.RequestOption{
		pexels.WithPerPage(l.perPage),
		pexels.WithPage(l.page),
	}
}

// compileFilter returns nil when no expression was given
func (l listingFlags) compileFilter() (*filter.Filter, error) {
	if l.filter == "" {
		return nil, nil
	}
	f, err := filter.Compile(l.filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	f.SetLogger(logger)
	logger.Debug().Str("filter", f.String()).Msg("Compiled filter expression")
	return f, nil
}

// walkPages issues the first request, then follows next-page links until
// the page budget is spent or the API reports no further page.
func walkPages(ctx context.Context, first func(context.Context) (*pexels.Response, error), visit func(*pexels.Response)) error {
	if listing.pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", listing.pages)
	}

	resp, err := first(ctx)
	if err != nil {
		return explain(err)
	}

	for fetched := 1; ; fetched++ {
		visit(resp)
		if fetched >= listing.pages {
			return nil
		}

		next, ok, err := client.NextPage(ctx)
		if err != nil {
			return explain(err)
		}
		if !ok {
			logger.Debug().Int("pages", fetched).Msg("No further pages")
			return nil
		}
		resp = next
	}
}

func printSummary(w io.Writer, resp *pexels.Response) {
	fmt.Fprintf(w, "\nPage %s (%s on this page, %s total)\n",
		orDash(resp.Page), orDash(resp.PageResults()), orDash(resp.TotalResults))
}

func printMatched(w io.Writer, f *filter.Filter, matched int) {
	if f == nil {
		return
	}
	fmt.Fprintf(w, "\n%d result(s) matched filter: %s\n", matched, f)
}

func orDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

// show renders an accessor result, logging and masking fields the record lacks
func show[T any](value T, err error) string {
	if err != nil {
		logger.Debug().Err(err).Msg("Field unavailable")
		return "?"
	}
	return fmt.Sprint(value)
}

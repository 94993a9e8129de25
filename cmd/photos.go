package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pexels/filter"
	"github.com/s0up4200/pexels/pexels"
)

// photosCmd groups the photo listings
var photosCmd = &cobra.Command{
	Use:               "photos",
	Short:             "Search and list photos",
	PersistentPreRunE: initializeApp,
}

var photosSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search photos by keyword",
	Long: `Search Pexels photos. All arguments are joined into one query.

Examples:
  pexels photos search ocean
  pexels photos search red sports car --per-page 40 --pages 3
  pexels photos search forest --filter 'width >= 3840 && orientation == "landscape"'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return runPhotos(cmd, func(ctx context.Context) (*pexels.Response, error) {
			return client.SearchPhotos(ctx, query, listing.requestOptions()...)
		})
	},
}

var photosPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular photos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhotos(cmd, func(ctx context.Context) (*pexels.Response, error) {
			return client.PopularPhotos(ctx, listing.requestOptions()...)
		})
	},
}

var photosCuratedCmd = &cobra.Command{
	Use:   "curated",
	Short: "List curated photos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPhotos(cmd, func(ctx context.Context) (*pexels.Response, error) {
			return client.CuratedPhotos(ctx, listing.requestOptions()...)
		})
	},
}

func init() {
	addListingFlags(photosCmd)

	photosCmd.AddCommand(photosSearchCmd)
	photosCmd.AddCommand(photosPopularCmd)
	photosCmd.AddCommand(photosCuratedCmd)
}

func runPhotos(cmd *cobra.Command, first func(context.Context) (*pexels.Response, error)) error {
	f, err := listing.compileFilter()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matched := 0

	err = walkPages(cmd.Context(), first, func(resp *pexels.Response) {
		printSummary(out, resp)
		photos := filter.Photos(f, client.PhotoEntries())
		printPhotos(out, photos)
		matched += len(photos)
	})
	if err != nil {
		return err
	}

	printMatched(out, f, matched)
	return nil
}

func printPhotos(w io.Writer, photos []*pexels.Photo) {
	if len(photos) == 0 {
		fmt.Fprintln(w, "No photos.")
		return
	}

	fmt.Fprintf(w, "%-10s %-11s %-24s %s\n", "ID", "SIZE", "PHOTOGRAPHER", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("━", 85))
	for _, p := range photos {
		size := show(p.Width()) + "x" + show(p.Height())
		fmt.Fprintf(w, "%-10s %-11s %-24s %s\n", show(p.ID()), size, truncate(show(p.Photographer()), 24), show(p.Description()))
		fmt.Fprintf(w, "%-10s %s\n", "", show(p.Original()))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

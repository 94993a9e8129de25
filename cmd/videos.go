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

// videosCmd groups the video listings
var videosCmd = &cobra.Command{
	Use:               "videos",
	Short:             "Search and list videos",
	PersistentPreRunE: initializeApp,
}

var videosSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search videos by keyword",
	Long: `Search Pexels videos and print the direct link to the highest
resolution rendition of each result.

Examples:
  pexels videos search waves
  pexels videos search city at night --filter 'duration < 30 && best_width >= 3840'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return runVideos(cmd, func(ctx context.Context) (*pexels.Response, error) {
			return client.SearchVideos(ctx, query, listing.requestOptions()...)
		})
	},
}

var videosPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular videos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVideos(cmd, func(ctx context.Context) (*pexels.Response, error) {
			return client.PopularVideos(ctx, listing.requestOptions()...)
		})
	},
}

func init() {
	addListingFlags(videosCmd)

	videosCmd.AddCommand(videosSearchCmd)
	videosCmd.AddCommand(videosPopularCmd)
}

func runVideos(cmd *cobra.Command, first func(context.Context) (*pexels.Response, error)) error {
	f, err := listing.compileFilter()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	matched := 0

	err = walkPages(cmd.Context(), first, func(resp *pexels.Response) {
		printSummary(out, resp)
		videos := filter.Videos(f, client.VideoEntries())
		printVideos(out, videos)
		matched += len(videos)
	})
	if err != nil {
		return err
	}

	printMatched(out, f, matched)
	return nil
}

func printVideos(w io.Writer, videos []*pexels.Video) {
	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos.")
		return
	}

	fmt.Fprintf(w, "%-10s %-11s %-6s %-24s %s\n", "ID", "BEST", "SECS", "VIDEOGRAPHER", "DESCRIPTION")
	fmt.Fprintln(w, strings.Repeat("━", 85))
	for _, v := range videos {
		best := show(v.HighestResolutionWidth()) + "x" + show(v.HighestResolutionHeight())
		fmt.Fprintf(w, "%-10s %-11s %-6s %-24s %s\n",
			show(v.ID()), best, show(v.Duration()), truncate(show(v.Videographer()), 24), show(v.Description()))
		fmt.Fprintf(w, "%-10s %s\n", "", show(v.Link()))
	}
}

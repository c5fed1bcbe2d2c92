package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/tmdb"
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		movies, err := NewClient(serverURL).Popular()
		if err != nil {
			return fmt.Errorf("popular failed: %w", err)
		}
		return outputMovies(cmd.OutOrStdout(), "Popular movies", movies)
	},
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List movies trending this week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		movies, err := NewClient(serverURL).Trending()
		if err != nil {
			return fmt.Errorf("trending failed: %w", err)
		}
		return outputMovies(cmd.OutOrStdout(), "Trending this week", movies)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Long: `Search movies by title.

Examples:
  marquee search "The Matrix"
  marquee search blade runner`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		movies, err := NewClient(serverURL).Search(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputMovies(cmd.OutOrStdout(), fmt.Sprintf("Results for %q", query), movies)
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover <genre>",
	Short: "List movies in a genre",
	Long: `List movies in a genre. The genre is a TMDB genre id or a name,
matched loosely against the genre list ("animated" finds "Animation").

Examples:
  marquee discover 28
  marquee discover comedy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(serverURL)
		arg := strings.Join(args, " ")

		genre, err := lookupGenre(client, arg)
		if err != nil {
			return err
		}
		movies, err := client.Discover(genre.IDString())
		if err != nil {
			return fmt.Errorf("discover failed: %w", err)
		}

		title := "Genre " + genre.IDString()
		if genre.Name != "" {
			title = genre.Name
		}
		return outputMovies(cmd.OutOrStdout(), title, movies)
	},
}

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show movie details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		details, err := NewClient(serverURL).Movie(args[0])
		if err != nil {
			return fmt.Errorf("movie %s: %w", args[0], err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), details)
		}
		printMovieDetails(cmd.OutOrStdout(), details)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(popularCmd, trendingCmd, searchCmd, discoverCmd, movieCmd)
}

func outputMovies(w io.Writer, heading string, movies []Movie) error {
	if jsonOutput {
		return printJSON(w, movies)
	}
	printMovieTable(w, heading, movies)
	return nil
}

func printMovieTable(w io.Writer, heading string, movies []Movie) {
	if len(movies) == 0 {
		fmt.Fprintf(w, "%s: no movies found.\n", heading)
		return
	}

	fmt.Fprintf(w, "%s (%d):\n\n", heading, len(movies))
	fmt.Fprintf(w, " %8s │ %-44s │ %4s │ %4s\n", "ID", "TITLE", "YEAR", "VOTE")
	fmt.Fprintln(w, "──────────┼──────────────────────────────────────────────┼──────┼──────")
	for _, m := range movies {
		fmt.Fprintf(w, " %8d │ %-44s │ %4s │ %4.1f\n",
			m.ID, truncate(m.Title, 44), releaseYear(m.ReleaseDate), m.VoteAverage)
	}
}

func printMovieDetails(w io.Writer, d *MovieDetails) {
	fmt.Fprintf(w, "%s (%s)\n", d.Title, releaseYear(d.ReleaseDate))
	if d.Tagline != "" {
		fmt.Fprintf(w, "  %s\n", d.Tagline)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  ID:       %d\n", d.ID)
	if d.Runtime > 0 {
		fmt.Fprintf(w, "  Runtime:  %s\n", formatRuntime(d.Runtime))
	}
	fmt.Fprintf(w, "  Rating:   %.1f\n", d.VoteAverage)
	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		fmt.Fprintf(w, "  Genres:   %s\n", strings.Join(names, ", "))
	}
	if d.IMDBID != "" {
		fmt.Fprintf(w, "  IMDb:     https://www.imdb.com/title/%s/\n", d.IMDBID)
	}
	if d.Homepage != "" {
		fmt.Fprintf(w, "  Homepage: %s\n", d.Homepage)
	}
	fmt.Fprintf(w, "  Poster:   %s\n", tmdb.ImageURL(d.PosterPath, "w500"))

	if d.Overview != "" {
		fmt.Fprintf(w, "\n%s\n", d.Overview)
	}
}

// releaseYear returns the year of a TMDB release date, or dashes when unknown.
func releaseYear(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}

func formatRuntime(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

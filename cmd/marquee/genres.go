package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/spf13/cobra"
)

// minGenreScore is the Jaro-Winkler similarity below which a genre name
// is treated as unknown.
const minGenreScore = 0.85

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List movie genres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		genres, err := NewClient(serverURL).Genres()
		if err != nil {
			return fmt.Errorf("genres failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), genres)
		}
		printGenres(cmd.OutOrStdout(), genres)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genresCmd)
}

// IDString returns the id in the form the discover endpoint expects.
func (g Genre) IDString() string {
	return strconv.FormatInt(g.ID, 10)
}

func printGenres(w io.Writer, genres []Genre) {
	fmt.Fprintf(w, " %6s │ %s\n", "ID", "NAME")
	fmt.Fprintln(w, "────────┼──────────────────")
	for _, g := range genres {
		fmt.Fprintf(w, " %6d │ %s\n", g.ID, g.Name)
	}
}

// lookupGenre turns a discover argument into a genre. Numeric arguments are
// used as ids without a round trip; names need the genre list.
func lookupGenre(client *Client, arg string) (Genre, error) {
	if id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64); err == nil {
		return Genre{ID: id}, nil
	}
	genres, err := client.Genres()
	if err != nil {
		return Genre{}, fmt.Errorf("genres failed: %w", err)
	}
	return resolveGenre(arg, genres)
}

// resolveGenre finds the genre whose name best matches name. An exact match
// (ignoring case and punctuation) wins; otherwise the highest Jaro-Winkler
// similarity at or above minGenreScore is used.
func resolveGenre(name string, genres []Genre) (Genre, error) {
	want := normalizeGenre(name)
	if want == "" {
		return Genre{}, fmt.Errorf("empty genre name")
	}

	var best Genre
	var bestScore float64
	for _, g := range genres {
		candidate := normalizeGenre(g.Name)
		if candidate == want {
			return g, nil
		}
		score := float64(edlib.JaroWinklerSimilarity(want, candidate))
		if score > bestScore {
			best, bestScore = g, score
		}
	}

	if bestScore < minGenreScore {
		return Genre{}, fmt.Errorf("unknown genre %q (see 'marquee genres')", name)
	}
	return best, nil
}

// normalizeGenre lower-cases name and drops everything but letters and digits.
func normalizeGenre(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

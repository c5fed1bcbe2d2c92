package catalog

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resource names one upstream-backed cache.
type Resource string

const (
	ResourcePopular  Resource = "popular"
	ResourceTrending Resource = "trending"
	ResourceGenres   Resource = "genres"
	ResourceSearch   Resource = "search"
	ResourceDiscover Resource = "discover"
	ResourceDetails  Resource = "details"
)

// Resources lists every resource in display order.
var Resources = []Resource{
	ResourcePopular,
	ResourceTrending,
	ResourceGenres,
	ResourceSearch,
	ResourceDiscover,
	ResourceDetails,
}

const (
	listTTL    = 10 * time.Minute
	detailsTTL = time.Hour
)

// Policy sets the expiry window and key limit of one resource cache.
// A Capacity of zero or less means unbounded.
type Policy struct {
	TTL      time.Duration
	Capacity int
}

// Policies maps each resource to its cache policy.
type Policies map[Resource]Policy

// DefaultPolicies returns the built-in policy table. Lists follow a moving
// ranking and refresh every ten minutes; movie details change rarely and
// are kept for an hour.
func DefaultPolicies() Policies {
	return Policies{
		ResourcePopular:  {TTL: listTTL, Capacity: 1},
		ResourceTrending: {TTL: listTTL, Capacity: 1},
		ResourceGenres:   {TTL: listTTL, Capacity: 1},
		ResourceSearch:   {TTL: listTTL, Capacity: 500},
		ResourceDiscover: {TTL: listTTL, Capacity: 100},
		ResourceDetails:  {TTL: detailsTTL, Capacity: 1000},
	}
}

// withDefaults fills in any resource missing from p, or set with a
// non-positive TTL, from DefaultPolicies.
func (p Policies) withDefaults() Policies {
	out := DefaultPolicies()
	for res, pol := range p {
		if _, known := out[res]; !known || pol.TTL <= 0 {
			continue
		}
		out[res] = pol
	}
	return out
}

// FailurePolicy decides what an accessor returns when the upstream call
// fails. It applies to every resource alike.
type FailurePolicy string

const (
	// FailPropagate returns upstream errors to the caller.
	FailPropagate FailurePolicy = "propagate"
	// FailEmpty degrades list failures to an empty list and detail
	// failures to ErrNotFound. Degraded results are never cached.
	FailEmpty FailurePolicy = "empty"
)

// Singleton resources have exactly one cache slot.
const (
	popularKey  = "popular"
	trendingKey = "trending"
	genresKey   = "genres"
)

// SearchKey normalizes a search query into its cache key: surrounding
// whitespace is trimmed and the rest is lower-cased, so "Star Wars" and
// "  STAR WARS " share a slot.
func SearchKey(query string) string {
	trimmed := strings.TrimFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	return cases.Lower(language.Und).String(trimmed)
}

package query

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// RawListQuery is the untrusted query string input for GET /posts. Every
// field is an optional raw string; normalization happens in Build.
type RawListQuery struct {
	Author string `form:"author"`
	Q      string `form:"q"`
	Page   string `form:"page"`
	Limit  string `form:"limit"`
}

// ListQuery is the normalized descriptor consumed by the listing
// pipeline: a filter (conjunction of zero, one, or two case-insensitive
// substring conditions) plus skip/limit arithmetic.
type ListQuery struct {
	Filter bson.M
	Page   int64
	Limit  int64
	Skip   int64
}

// Build normalizes raw input. It never returns an error: out-of-range
// paging values are clamped, and search strings are escaped so they
// match as literal substrings rather than as regex patterns.
func Build(raw RawListQuery) ListQuery {
	filter := bson.M{}
	if raw.Author != "" {
		filter["author"] = substringMatch(raw.Author)
	}
	if raw.Q != "" {
		filter["title"] = substringMatch(raw.Q)
	}

	page := parseClamped(raw.Page, defaultPage, 1, 0)
	limit := parseClamped(raw.Limit, defaultLimit, 1, maxLimit)

	return ListQuery{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Skip:   (page - 1) * limit,
	}
}

// substringMatch builds a case-insensitive infix predicate from raw user
// input. The input is escaped first; unescaped input embedded in a regex
// is an injection hole, not just a correctness bug.
func substringMatch(input string) primitive.Regex {
	return primitive.Regex{Pattern: EscapeRegex(input), Options: "i"}
}

// regexMeta is the set of characters with special meaning inside a
// regular expression.
const regexMeta = `.*+?^${}()|[]\`

// EscapeRegex backslash-escapes every regex metacharacter so the result
// matches the input literally.
func EscapeRegex(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if strings.ContainsRune(regexMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseClamped parses s as an integer and clamps it to [min, max]; max 0
// means no upper bound. Unparseable input falls back to def.
func parseClamped(s string, def, min, max int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		n = def
	}
	if n < min {
		n = min
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}

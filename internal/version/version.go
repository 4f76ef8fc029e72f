// Package version discovers and orders version tags.
//
// The accepted grammar is deliberately looser than SemVer: an optional
// leading "v", required major.minor, an optional ".patch" and an optional
// free-form suffix that must not start with a digit. Pre-release ordering
// is an approximation (see LatestFull), good enough for bump-version
// workflows over the common "name.N" convention. It is not, and must not
// become, a SemVer-compliant comparator: full precedence rules would
// change the selected tag for existing repositories.
package version

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Candidate is the decomposition of a tag string that matched the
// version grammar. Candidates are transient values; nothing in this
// package holds state between calls.
type Candidate struct {
	Raw        string // original tag string
	HasVPrefix bool   // tag began with a literal "v"
	Major      int
	Minor      int
	Patch      int    // 0 when absent
	HasPatch   bool   // whether patch was present in the tag
	PreRelease string // suffix after patch, "" for releases
}

// Base returns the "major.minor.patch" reduction of the candidate,
// with patch defaulting to 0 when absent.
func (c Candidate) Base() string {
	return fmt.Sprintf("%d.%d.%d", c.Major, c.Minor, c.Patch)
}

// Kind classifies a resolution result.
type Kind int

const (
	// KindNone means no tag matched the version grammar.
	KindNone Kind = iota
	// KindRelease means the selected tag has no pre-release suffix.
	KindRelease
	// KindPreRelease means the selected tag carries a pre-release suffix.
	KindPreRelease
)

// Resolution is the structured result of Largest.
type Resolution struct {
	Kind Kind
	Tag  string // the winning tag as it appears in the input
	Base string // its major.minor.patch reduction
}

// Resolver classifies and orders version tags. The grammar pattern is
// compiled once at construction and never mutated, so a Resolver is safe
// for concurrent use.
type Resolver struct {
	pattern *regexp.Regexp
}

// New creates a Resolver with the default loose grammar.
func New() *Resolver {
	return &Resolver{
		pattern: regexp.MustCompile(`^v?(\d+)\.(\d+)(?:\.(\d+)(\D.*)?)?$`),
	}
}

// defaultResolver backs the package-level functions. It is never
// mutated after init.
var defaultResolver = New()

// ParseCandidate applies the version grammar to a tag string.
// A non-matching tag is an expected case, not an error: the second
// return value is false and the candidate is the zero value.
func (r *Resolver) ParseCandidate(tag string) (Candidate, bool) {
	m := r.pattern.FindStringSubmatch(tag)
	if m == nil {
		return Candidate{}, false
	}

	c := Candidate{
		Raw:        tag,
		HasVPrefix: strings.HasPrefix(tag, "v"),
	}
	// The digit groups always parse: the pattern guarantees it.
	c.Major, _ = strconv.Atoi(m[1])
	c.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		c.Patch, _ = strconv.Atoi(m[3])
		c.HasPatch = true
		c.PreRelease = m[4]
	}
	return c, true
}

// LatestBase reduces every version tag in tags to its major.minor.patch
// form and returns the numerically largest one. The second return value
// is false when no tag matches the grammar. Which original tag produced
// the winning base is deliberately not reported: "1.2.3" and "v1.2.3"
// reduce identically.
func (r *Resolver) LatestBase(tags []string) (string, bool) {
	var best Candidate
	found := false
	for _, tag := range tags {
		if !cheapPrefilter(tag) {
			continue
		}
		c, ok := r.ParseCandidate(tag)
		if !ok {
			continue
		}
		if !found || compareNumeric(best, c) < 0 {
			best = c
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.Base(), true
}

// LatestFull returns the largest tag among those reducing to base.
//
// A release tag always outranks any pre-release of the same base, so if
// base (or "v"+base) exists verbatim it is returned directly; the bare
// form is probed first. Otherwise the surviving tags are pre-releases of
// base and the largest is chosen by comparing the suffix with its
// trailing digit run removed lexicographically, then the trailing runs
// numerically. That makes "rc.10" outrank "rc.2" but does not implement
// SemVer's dot-separated identifier precedence; mixed multi-field
// pre-release schemes may order unexpectedly. Documented limitation.
func (r *Resolver) LatestFull(base string, tags []string) (string, bool) {
	for _, probe := range []string{base, "v" + base} {
		if slices.Contains(tags, probe) {
			return probe, true
		}
	}

	var best Candidate
	found := false
	for _, tag := range tags {
		c, ok := r.ParseCandidate(tag)
		if !ok || c.Base() != base {
			continue
		}
		if !found || comparePreRelease(best.PreRelease, c.PreRelease) < 0 {
			best = c
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.Raw, true
}

// Largest selects the single largest version tag in tags.
// It composes LatestBase and LatestFull and reports the result with
// its classification. A repository with no version tags yields
// Resolution{Kind: KindNone}.
func (r *Resolver) Largest(tags []string) Resolution {
	base, ok := r.LatestBase(tags)
	if !ok {
		return Resolution{Kind: KindNone}
	}
	tag, ok := r.LatestFull(base, tags)
	if !ok {
		// LatestBase found a candidate, so at least one tag reduces
		// to base and LatestFull cannot miss.
		return Resolution{Kind: KindNone}
	}

	res := Resolution{Kind: KindRelease, Tag: tag, Base: base}
	if c, parsed := r.ParseCandidate(tag); parsed && c.PreRelease != "" {
		res.Kind = KindPreRelease
	}
	return res
}

// ParseCandidate applies the default grammar. See Resolver.ParseCandidate.
func ParseCandidate(tag string) (Candidate, bool) {
	return defaultResolver.ParseCandidate(tag)
}

// LatestBase selects the largest base version. See Resolver.LatestBase.
func LatestBase(tags []string) (string, bool) {
	return defaultResolver.LatestBase(tags)
}

// LatestFull selects the largest tag for a base. See Resolver.LatestFull.
func LatestFull(base string, tags []string) (string, bool) {
	return defaultResolver.LatestFull(base, tags)
}

// Largest selects the largest version tag. See Resolver.Largest.
func Largest(tags []string) Resolution {
	return defaultResolver.Largest(tags)
}

// cheapPrefilter skips strings that cannot possibly match the grammar
// before paying for the regexp.
func cheapPrefilter(tag string) bool {
	if tag == "" {
		return false
	}
	return tag[0] == 'v' || (tag[0] >= '0' && tag[0] <= '9')
}

// compareNumeric orders candidates by major, then minor, then patch,
// each as integers. An absent patch compares as 0, the lowest value.
func compareNumeric(a, b Candidate) int {
	if c := cmp.Compare(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Minor, b.Minor); c != 0 {
		return c
	}
	return cmp.Compare(a.Patch, b.Patch)
}

// comparePreRelease orders pre-release suffixes: the stem (suffix minus
// any trailing digit run) lexicographically, then the trailing runs as
// numbers. A suffix with a trailing run outranks an otherwise equal one
// without.
func comparePreRelease(a, b string) int {
	aStem, aDigits := splitTrailingDigits(a)
	bStem, bDigits := splitTrailingDigits(b)

	if c := strings.Compare(aStem, bStem); c != 0 {
		return c
	}
	if aDigits == "" || bDigits == "" {
		if aDigits == bDigits {
			return 0
		}
		if aDigits == "" {
			return -1
		}
		return 1
	}
	return compareDigitRuns(aDigits, bDigits)
}

// splitTrailingDigits separates a suffix into its stem and any trailing
// run of ASCII digits. "rc.10" -> ("rc.", "10"); "beta" -> ("beta", "").
func splitTrailingDigits(s string) (stem, digits string) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[:i], s[i:]
}

// compareDigitRuns compares two non-empty digit strings numerically
// without parsing, so arbitrarily long runs cannot overflow.
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

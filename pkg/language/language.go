// Package language maps tldr language codes to cache directory names and
// detects the user's language priority list from the environment.
package language

import (
	"os"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/glorpus-work/tldrc/pkg/errors"
)

// English is the distinguished language that is always present in the
// cache; its directory is used to discover the platform set.
const English = "en"

// dirPrefix is the naming convention for language directories.
const dirPrefix = "pages"

// layoutEnglishSuffixed is the first cache layout whose English directory
// carries the language suffix (pages.en). Older layouts used a bare
// `pages` directory for English.
var layoutEnglishSuffixed = goversion.Must(goversion.NewVersion("2"))

// Layout is the versioned language-code-to-directory-name convention.
// The mapping lives here and nowhere else: the historical `pages` vs
// `pages.en` split must not leak into call sites.
type Layout struct {
	version *goversion.Version
}

// DefaultLayout returns the current cache layout.
func DefaultLayout() Layout {
	return Layout{version: layoutEnglishSuffixed}
}

// ParseLayout parses a layout version string (e.g. "1", "2").
func ParseLayout(s string) (Layout, error) {
	v, err := goversion.NewVersion(s)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "invalid cache layout version %q", s)
	}
	return Layout{version: v}, nil
}

// Dir returns the cache directory name for a language code.
func (l Layout) Dir(lang string) string {
	if l.version == nil {
		l = DefaultLayout()
	}
	if lang == English && l.version.LessThan(layoutEnglishSuffixed) {
		return dirPrefix
	}
	return dirPrefix + "." + lang
}

// Dirs maps a list of language codes to directory names, preserving order.
func (l Layout) Dirs(langs []string) []string {
	dirs := make([]string, 0, len(langs))
	for _, lang := range langs {
		dirs = append(dirs, l.Dir(lang))
	}
	return dirs
}

// FromDir is the inverse of Dir.
func (l Layout) FromDir(dir string) string {
	if dir == dirPrefix {
		return English
	}
	return strings.TrimPrefix(dir, dirPrefix+".")
}

// DedupPreserve removes duplicates from langs while keeping the original
// relative order. Order encodes the caller's priority and must survive.
func DedupPreserve(langs []string) []string {
	seen := make(map[string]struct{}, len(langs))
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	return out
}

// FromEnv derives the language priority list from LANG and LANGUAGE
// following the tldr client specification. The result may contain
// duplicates; update sorts and find dedups, so both call sites handle that
// themselves. An unset LANG yields no languages.
func FromEnv() []string {
	varLang, ok := os.LookupEnv("LANG")
	if !ok || varLang == "" {
		return nil
	}

	candidates := strings.Split(os.Getenv("LANGUAGE"), ":")
	candidates = append(candidates, varLang)

	var out []string
	for _, lang := range candidates {
		switch {
		case len(lang) >= 5 && lang[2] == '_':
			// <language>_<country> (ll_CC), then the bare language.
			out = append(out, lang[:5], lang[:2])
		case len(lang) == 2:
			out = append(out, lang)
		}
	}
	return out
}

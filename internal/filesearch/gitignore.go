package filesearch

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// GitignoreMatcher matches slash-separated relative paths against the
// patterns of a single .gitignore file. The last matching pattern wins.
type GitignoreMatcher struct {
	rules []ignoreRule
}

type ignoreRule struct {
	re       *regexp.Regexp
	negate   bool
	dirOnly  bool
	anchored bool
}

// LoadGitignore reads root/.gitignore. A missing or unreadable file yields
// a matcher that ignores nothing.
func LoadGitignore(root string) *GitignoreMatcher {
	m, err := NewGitignoreMatcher(filepath.Join(root, ".gitignore"))
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("filesearch: ignoring unreadable .gitignore")
		return &GitignoreMatcher{}
	}
	return m
}

// NewGitignoreMatcher parses the .gitignore at path. An empty path or a
// missing file yields an empty matcher.
func NewGitignoreMatcher(path string) (*GitignoreMatcher, error) {
	m := &GitignoreMatcher{}
	if path == "" {
		return m, nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if r, ok := parseRule(sc.Text()); ok {
			m.rules = append(m.rules, r)
		}
	}
	return m, sc.Err()
}

// Matches reports whether rel is ignored.
func (m *GitignoreMatcher) Matches(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	ignored := false
	for _, r := range m.rules {
		if r.matches(rel, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r ignoreRule) matches(rel string, isDir bool) bool {
	if r.dirOnly {
		if isDir {
			return r.re.MatchString(rel)
		}
		return r.re.MatchString(path.Dir(rel))
	}
	if r.anchored {
		return r.re.MatchString(rel)
	}
	return r.re.MatchString(rel) || r.re.MatchString(path.Base(rel))
}

func parseRule(line string) (ignoreRule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}
	var r ignoreRule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	r.anchored = strings.HasPrefix(line, "/")

	re, err := regexp.Compile(globToRegexp(line))
	if err != nil {
		return ignoreRule{}, false
	}
	r.re = re
	return r, true
}

// globToRegexp translates a gitignore glob. Unanchored patterns may match
// at any directory level and also cover everything beneath a match.
func globToRegexp(glob string) string {
	var b strings.Builder
	anchored := strings.HasPrefix(glob, "/")
	if anchored {
		b.WriteString("^")
		glob = glob[1:]
	} else {
		b.WriteString("(^|/)")
	}

	for i := 0; i < len(glob); i++ {
		switch c := glob[i]; c {
		case '*':
			switch {
			case strings.HasPrefix(glob[i:], "**/"):
				b.WriteString("(.*/)?")
				i += 2
			case strings.HasPrefix(glob[i:], "**"):
				b.WriteString(".*")
				i++
			default:
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(glob[i : i+end+1])
			i += end
		case '\\':
			if i+1 < len(glob) {
				i++
				b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	if anchored {
		b.WriteString("$")
	} else {
		b.WriteString("(/.*)?$")
	}
	return b.String()
}

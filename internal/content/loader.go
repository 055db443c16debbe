package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/frontmatter"
)

// RawPost is one content file split into front-matter fields and body,
// before validation.
type RawPost struct {
	Path     string // source path, kept for error context
	Filename string
	Fields   map[string]any
	Body     []byte
}

// Loader reads post files from a source directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at the given content directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads every .md file in the content directory (sorted by filename for
// stable iteration), splitting front-matter from body. A file that cannot be
// read fails with a load error; malformed front-matter fails with a parse
// error. Both carry the offending path.
func (l *Loader) Load() ([]RawPost, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, berrors.LoadFailed(l.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	posts := make([]RawPost, 0, len(names))
	for _, name := range names {
		path := filepath.Join(l.dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, berrors.LoadFailed(path, err)
		}
		if !utf8.Valid(raw) {
			return nil, berrors.LoadFailed(path, errNotUTF8)
		}

		fm, body, _, err := frontmatter.Split(raw)
		if err != nil {
			return nil, berrors.ParseFailed(path, err)
		}
		fields, err := frontmatter.ParseYAML(fm)
		if err != nil {
			return nil, berrors.ParseFailed(path, err)
		}

		posts = append(posts, RawPost{
			Path:     path,
			Filename: name,
			Fields:   fields,
			Body:     body,
		})
	}

	return posts, nil
}

var errNotUTF8 = &invalidEncodingError{}

type invalidEncodingError struct{}

func (*invalidEncodingError) Error() string { return "file is not valid UTF-8 text" }

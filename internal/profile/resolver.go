package profile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default share addressing. The root template is rendered once per side with
// {computer} and {share} replaced.
const (
	DefaultShareName = "itadmin$"
	DefaultShareRoot = `\\{computer}\{share}`
)

// userToken is replaced with the username inside entry segments.
const userToken = "{user}"

// Kind tells the copy engine whether an entry is a folder tree or one file.
type Kind int

const (
	KindDir Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "dir"
}

// Entry is one path below the admin share, split into segments.
type Entry struct {
	Kind     Kind
	Segments []string
}

func dir(segments ...string) Entry  { return Entry{Kind: KindDir, Segments: segments} }
func file(segments ...string) Entry { return Entry{Kind: KindFile, Segments: segments} }

// profileDir builds an entry below users/<user>/.
func profileDir(segments ...string) Entry {
	return dir(append([]string{"users", userToken}, segments...)...)
}

// categoryTable is fixed at build time. The Favourites label maps to the
// Windows "Favorites" folder on purpose.
var categoryTable = map[Category][]Entry{
	Desktop:    {profileDir("Desktop")},
	Favourites: {profileDir("Favorites")},
	Documents:  {profileDir("Documents")},
	Outlook: {
		profileDir("AppData", "Roaming", "Microsoft", "Outlook"),
		profileDir("AppData", "Roaming", "Microsoft", "Signatures"),
	},
	Pictures: {profileDir("Pictures")},
	Apollo: {
		dir("fp", "datadir", "pkeys"),
		dir("fp", "datadir", "users"),
		file("fp", "machine", "dat32com.ini"),
	},
}

// Entries returns a copy of the table rows for c.
func Entries(c Category) []Entry {
	rows := categoryTable[c]
	out := make([]Entry, len(rows))
	for i, e := range rows {
		out[i] = Entry{Kind: e.Kind, Segments: append([]string(nil), e.Segments...)}
	}
	return out
}

// PathPair is a resolved source and destination for one entry.
type PathPair struct {
	Category    Category
	Kind        Kind
	Source      string
	Destination string
}

func (p PathPair) String() string {
	return fmt.Sprintf("%s %s -> %s", p.Kind, p.Source, p.Destination)
}

// Resolver turns categories and params into share paths.
type Resolver struct {
	root  string
	share string
}

// NewResolver builds a resolver. Empty arguments fall back to the defaults.
func NewResolver(rootTemplate, shareName string) *Resolver {
	if strings.TrimSpace(rootTemplate) == "" {
		rootTemplate = DefaultShareRoot
	}
	if strings.TrimSpace(shareName) == "" {
		shareName = DefaultShareName
	}
	return &Resolver{root: rootTemplate, share: shareName}
}

// ShareRoot renders the admin share root for one computer.
func (r *Resolver) ShareRoot(computer string) string {
	return strings.NewReplacer("{computer}", computer, "{share}", r.share).Replace(r.root)
}

// Resolve returns the path pairs for c in table order. Params are validated
// before anything is substituted.
func (r *Resolver) Resolve(c Category, p Params) ([]PathPair, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	srcRoot := r.ShareRoot(p.OldComputer)
	dstRoot := r.ShareRoot(p.NewComputer)

	entries := categoryTable[c]
	pairs := make([]PathPair, 0, len(entries))
	for _, e := range entries {
		sub := make([]string, len(e.Segments))
		for i, seg := range e.Segments {
			sub[i] = strings.ReplaceAll(seg, userToken, p.Username)
		}
		pairs = append(pairs, PathPair{
			Category:    c,
			Kind:        e.Kind,
			Source:      join(srcRoot, sub),
			Destination: join(dstRoot, sub),
		})
	}
	return pairs, nil
}

// ResolveAll resolves every category in cats, preserving order.
func (r *Resolver) ResolveAll(cats []Category, p Params) ([]PathPair, error) {
	var pairs []PathPair
	for _, c := range cats {
		resolved, err := r.Resolve(c, p)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, resolved...)
	}
	return pairs, nil
}

// join appends sub to root. UNC roots keep backslashes on every platform so
// the path stays a valid share path; other roots use the local separator.
func join(root string, sub []string) string {
	if IsUNC(root) {
		return strings.Join(append([]string{strings.TrimRight(root, `\`)}, sub...), `\`)
	}
	return filepath.Join(append([]string{root}, sub...)...)
}

// IsUNC reports whether path is a \\server\share style path.
func IsUNC(path string) bool {
	return strings.HasPrefix(path, `\\`)
}

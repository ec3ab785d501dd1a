package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/shares/{computer}/{share}"

func testParams() Params {
	return Params{OldComputer: "PC1", NewComputer: "PC2", Username: "jdoe"}
}

func sharePath(computer string, sub ...string) string {
	return filepath.Join(append([]string{"/shares", computer, DefaultShareName}, sub...)...)
}

func TestResolve(t *testing.T) {
	r := NewResolver(testRoot, "")

	tests := []struct {
		category Category
		want     []PathPair
	}{
		{Desktop, []PathPair{
			{Desktop, KindDir, sharePath("PC1", "users", "jdoe", "Desktop"), sharePath("PC2", "users", "jdoe", "Desktop")},
		}},
		{Favourites, []PathPair{
			{Favourites, KindDir, sharePath("PC1", "users", "jdoe", "Favorites"), sharePath("PC2", "users", "jdoe", "Favorites")},
		}},
		{Documents, []PathPair{
			{Documents, KindDir, sharePath("PC1", "users", "jdoe", "Documents"), sharePath("PC2", "users", "jdoe", "Documents")},
		}},
		{Outlook, []PathPair{
			{Outlook, KindDir,
				sharePath("PC1", "users", "jdoe", "AppData", "Roaming", "Microsoft", "Outlook"),
				sharePath("PC2", "users", "jdoe", "AppData", "Roaming", "Microsoft", "Outlook")},
			{Outlook, KindDir,
				sharePath("PC1", "users", "jdoe", "AppData", "Roaming", "Microsoft", "Signatures"),
				sharePath("PC2", "users", "jdoe", "AppData", "Roaming", "Microsoft", "Signatures")},
		}},
		{Pictures, []PathPair{
			{Pictures, KindDir, sharePath("PC1", "users", "jdoe", "Pictures"), sharePath("PC2", "users", "jdoe", "Pictures")},
		}},
		{Apollo, []PathPair{
			{Apollo, KindDir, sharePath("PC1", "fp", "datadir", "pkeys"), sharePath("PC2", "fp", "datadir", "pkeys")},
			{Apollo, KindDir, sharePath("PC1", "fp", "datadir", "users"), sharePath("PC2", "fp", "datadir", "users")},
			{Apollo, KindFile, sharePath("PC1", "fp", "machine", "dat32com.ini"), sharePath("PC2", "fp", "machine", "dat32com.ini")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			got, err := r.Resolve(tt.category, testParams())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDefaultRoot(t *testing.T) {
	r := NewResolver("", "")
	assert.Equal(t, `\\PC1\itadmin$`, r.ShareRoot("PC1"))

	r = NewResolver(`\\{computer}\{share}`, "c$")
	assert.Equal(t, `\\PC9\c$`, r.ShareRoot("PC9"))
}

func TestResolveDefaultRootPaths(t *testing.T) {
	r := NewResolver("", "")

	docs, err := r.Resolve(Documents, testParams())
	require.NoError(t, err)
	assert.Equal(t, []PathPair{{Documents, KindDir,
		`\\PC1\itadmin$\users\jdoe\Documents`,
		`\\PC2\itadmin$\users\jdoe\Documents`}}, docs)

	apollo, err := r.Resolve(Apollo, testParams())
	require.NoError(t, err)
	require.Len(t, apollo, 3)
	assert.Equal(t, `\\PC2\itadmin$\fp\machine\dat32com.ini`, apollo[2].Destination)

	// a trailing separator on the template is not doubled
	r = NewResolver(`\\{computer}\{share}\`, "")
	docs, err = r.Resolve(Documents, testParams())
	require.NoError(t, err)
	assert.Equal(t, `\\PC1\itadmin$\users\jdoe\Documents`, docs[0].Source)
}

func TestIsUNC(t *testing.T) {
	assert.True(t, IsUNC(`\\PC1\itadmin$`))
	assert.False(t, IsUNC(`/shares/PC1/itadmin$`))
	assert.False(t, IsUNC(`C:\shares`))
}

func TestResolveRejectsBadParams(t *testing.T) {
	r := NewResolver(testRoot, "")

	bad := []Params{
		{OldComputer: "", NewComputer: "PC2", Username: "jdoe"},
		{OldComputer: "PC1", NewComputer: "PC2", Username: ".."},
		{OldComputer: "PC1", NewComputer: "PC2", Username: "../admin"},
		{OldComputer: `PC1\c$`, NewComputer: "PC2", Username: "jdoe"},
		{OldComputer: "PC1", NewComputer: "PC2/x", Username: "jdoe"},
		{OldComputer: "PC1", NewComputer: "PC2", Username: "j:doe"},
		{OldComputer: "PC1", NewComputer: "PC2", Username: "jdoe\n"},
		{OldComputer: " PC1", NewComputer: "PC2", Username: "jdoe"},
	}
	for _, p := range bad {
		_, err := r.Resolve(Documents, p)
		assert.ErrorIs(t, err, ErrInvalidParams, "params %+v", p)
	}
}

func TestResolveUnknownCategory(t *testing.T) {
	r := NewResolver(testRoot, "")
	_, err := r.Resolve(Category(42), testParams())
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestResolveAllKeepsOrder(t *testing.T) {
	r := NewResolver(testRoot, "")
	pairs, err := r.ResolveAll([]Category{Documents, Apollo}, testParams())
	require.NoError(t, err)
	require.Len(t, pairs, 4)
	assert.Equal(t, Documents, pairs[0].Category)
	for _, p := range pairs[1:] {
		assert.Equal(t, Apollo, p.Category)
	}
}

func TestEntriesIsACopy(t *testing.T) {
	rows := Entries(Desktop)
	rows[0].Segments[2] = "Downloads"
	assert.Equal(t, "Desktop", Entries(Desktop)[0].Segments[2])
}

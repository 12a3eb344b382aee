package utils

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPtr(t *testing.T) {
	p := Ptr("test")
	require.NotNil(t, p)
	assert.Equal(t, "test", *p)
	assert.Equal(t, "default", DerefPtr[string](nil, "default"))
	assert.Equal(t, "test", DerefPtr(p, "default"))
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"models/answer.go",
		"models/nested/player.go",
		"models/nested/player_test.go",
		"other/skip.go",
	} {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0644))
	}

	got, err := ExpandGlobs(dir, "./models/**/*.go", "!./models/**/*_test.go")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "models", "answer.go"),
		filepath.Join(dir, "models", "nested", "player.go"),
	}, got)

	got, err = ExpandGlobs(dir, "./models/**/*.go", "!./models/nested")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "models", "answer.go")}, got)

	assert.Equal(t, []string{filepath.Join(dir, "models"), filepath.Join(dir, "models", "nested")},
		UniqueDirs([]string{
			filepath.Join(dir, "models", "answer.go"),
			filepath.Join(dir, "models", "nested", "player.go"),
			filepath.Join(dir, "models", "nested"),
			filepath.Join(dir, "missing.go"),
		}))
}

func TestAllPatternsAreImportPaths(t *testing.T) {
	tests := []struct {
		patterns []string
		want     bool
	}{
		{[]string{"."}, true},
		{[]string{"./..."}, true},
		{[]string{"github.com/acme/chess/models"}, true},
		{[]string{"./models/*.go"}, false},
		{[]string{"./models", "!./models/internal"}, false},
		{[]string{"answer.go"}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AllPatternsAreImportPaths(tt.patterns), "patterns %v", tt.patterns)
	}
}

func TestExtractCommentText(t *testing.T) {
	src := `package x

// Answer is a reply.
// @boollike
//
// It has two values.
type Answer int
`
	f, err := parser.ParseFile(token.NewFileSet(), "x.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "Answer is a reply.\nIt has two values.", ExtractCommentText(f.Comments))
	assert.Empty(t, ExtractCommentText(nil))
}

func TestIsBasicType(t *testing.T) {
	assert.True(t, IsBasicType("int"))
	assert.True(t, IsBasicType("string"))
	assert.False(t, IsBasicType("Answer"))
	assert.False(t, IsBasicType("error"))
}

package types

import (
	"testing"

	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/internal/testutil"
	"github.com/pablor21/boollike/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, files map[string]string) *ProcessResult {
	t.Helper()
	ctx := NewProcessContext(config.NewDefaultConfig(), logger.Nop())
	res := NewProcessResult()
	require.NoError(t, res.ParsePackage(ctx, testutil.Package(t, t.TempDir(), "example.com/chess", files)))
	return res
}

func TestParsePackageCollectsAnnotatedTypes(t *testing.T) {
	res := parse(t, map[string]string{"chess.go": `package chess

// Answer is a reply
// @boollike
type Answer int

const (
	Yes Answer = iota + 1
	// @intofalse
	No
)

// Plain is not annotated
type Plain int

const (
	P1 Plain = 1
	P2 Plain = 2
)
`})

	require.Len(t, res.Packages, 1)
	require.Len(t, res.Types(), 1)
	ti := res.Types()[0]

	assert.Equal(t, "Answer", ti.Name)
	assert.Equal(t, "example.com/chess.Answer", ti.CanonicalName)
	assert.Equal(t, "chess", ti.PkgName)
	assert.Equal(t, TypeKindEnum, ti.Kind)
	assert.Equal(t, "int", ti.Underlying)
	assert.Equal(t, VisibilityPublic, ti.Visibility)
	assert.Equal(t, "Answer is a reply", ti.Comment)
	assert.True(t, ti.IsEnumLike())

	require.Len(t, ti.EnumValues, 2)
	assert.Equal(t, "Yes", ti.EnumValues[0].Name)
	assert.Equal(t, "1", ti.EnumValues[0].Value)
	assert.True(t, ti.EnumValues[0].IsConst)
	assert.Empty(t, ti.EnumValues[0].Annotations, "block doc must not leak onto the first value")
	assert.Equal(t, "No", ti.EnumValues[1].Name)
	assert.Equal(t, "2", ti.EnumValues[1].Value)
	require.Len(t, ti.EnumValues[1].Annotations, 1)
	assert.Equal(t, "intofalse", ti.EnumValues[1].Annotations[0].Name)
}

func TestParsePackageValuesAcrossFiles(t *testing.T) {
	res := parse(t, map[string]string{
		"values.go": `package chess

const (
	Black Player = "black"
	White Player = "white"
)

var Default Player = White
`,
		"player.go": `package chess

// @boollike
type Player string
`,
	})

	ti := res.Elements["example.com/chess.Player"]
	require.NotNil(t, ti)
	require.Len(t, ti.EnumValues, 3)
	assert.Equal(t, `"black"`, ti.EnumValues[0].Value)
	assert.False(t, ti.EnumValues[2].IsConst, "package-level variables are not constants")
	assert.Contains(t, ti.File, "player.go")
}

func TestParsePackageSkipsGeneratedFilesAndSkipAnnotation(t *testing.T) {
	res := parse(t, map[string]string{
		"answer.go": `package chess

// @boollike
type Answer int

// @boollike
// @skip
type Ignored int
`,
		"answer_boollike.go": `// Code generated by boollike. DO NOT EDIT.

package chess

// @boollike
type Generated int
`,
	})

	require.Len(t, res.Types(), 1)
	assert.Equal(t, "Answer", res.Types()[0].Name)
}

func TestParsePackageKinds(t *testing.T) {
	res := parse(t, map[string]string{"kinds.go": `package chess

// @boollike
type Board struct{}

// @boollike
type Alias = int

// @boollike
type Gen[T any] int

// @boollike
type flag bool
`})

	kinds := map[string]TypeKind{}
	for _, ti := range res.Types() {
		kinds[ti.Name] = ti.Kind
	}
	assert.Equal(t, TypeKindStruct, kinds["Board"])
	assert.Equal(t, TypeKindAlias, kinds["Alias"])
	assert.Equal(t, TypeKindBasic, kinds["Gen"])
	assert.Equal(t, TypeKindBasic, kinds["flag"])

	assert.True(t, res.Elements["example.com/chess.Gen"].IsGeneric)
	assert.False(t, res.Elements["example.com/chess.Gen"].IsEnumLike())
	assert.Equal(t, VisibilityPrivate, res.Elements["example.com/chess.flag"].Visibility)
}

func TestParsePackageStrictValidation(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Validation.Annotations = config.ValidationModeStrict
	ctx := NewProcessContext(cfg, logger.Nop())
	res := NewProcessResult()

	pkg := testutil.Source(t, `package chess

// @intofalse
// @boollike
type Answer int

const (
	Yes Answer = 1
	No  Answer = 0
)
`)
	require.NoError(t, res.ParsePackage(ctx, pkg))
	require.Len(t, res.Packages, 1)
	assert.True(t, res.Packages[0].Blocked())
	assert.Len(t, res.Packages[0].Errors, 1)
}

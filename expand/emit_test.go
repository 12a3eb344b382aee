package expand

import (
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pablor21/boollike/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

func definition(a, b string) *types.TypeDefinition {
	return &types.TypeDefinition{
		Name:    "T",
		PkgName: "p",
		Variants: [2]types.VariantDefinition{
			{Name: a},
			{Name: b},
		},
	}
}

func TestEmitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	variant := func(prefix string) gopter.Gen {
		return gen.Identifier().Map(func(s string) string { return prefix + s })
	}

	properties.Property("negation is an involution without fixed points", prop.ForAll(
		func(a, b string, marker int) bool {
			res := Emit(definition(a, b), marker, DefaultNames())
			m := res.Negation.Mapping
			return m[a] == b && m[b] == a && m[m[a]] == a && m[m[b]] == b
		},
		variant("A"),
		variant("B"),
		gen.IntRange(-1, 1),
	))

	properties.Property("bool conversions round trip", prop.ForAll(
		func(a, b string, marker int) bool {
			res := Emit(definition(a, b), marker, DefaultNames())
			for _, v := range []string{a, b} {
				if res.FromBool.Mapping[res.ToBool.Mapping[v]] != v {
					return false
				}
			}
			for _, x := range []bool{false, true} {
				if res.ToBool.Mapping[res.FromBool.Mapping[x]] != x {
					return false
				}
			}
			falseV := []string{a, b}[marker]
			return !res.ToBool.Mapping[falseV] && res.FromBool.Mapping[false] == falseV
		},
		variant("A"),
		variant("B"),
		gen.IntRange(0, 1),
	))

	properties.Property("negation commutes with bool conversion", prop.ForAll(
		func(a, b string, marker int) bool {
			res := Emit(definition(a, b), marker, DefaultNames())
			for _, v := range []string{a, b} {
				if res.ToBool.Mapping[res.Negation.Mapping[v]] == res.ToBool.Mapping[v] {
					return false
				}
			}
			return true
		},
		variant("A"),
		variant("B"),
		gen.IntRange(0, 1),
	))

	properties.Property("rendered code parses", prop.ForAll(
		func(a, b string, marker int) bool {
			res := Emit(definition(a, b), marker, DefaultNames())
			code, err := Render("p", res.Decls)
			if err != nil {
				return false
			}
			src := "package p\n\ntype T int\n\nconst (\n\t" + a + " T = 0\n\t" + b + " T = 1\n)\n\n" + string(code)
			_, err = parser.ParseFile(token.NewFileSet(), "p.go", src, 0)
			return err == nil
		},
		variant("A"),
		variant("B"),
		gen.IntRange(-1, 1),
	))

	properties.TestingRun(t)
}

func TestEmitDeclarationCount(t *testing.T) {
	assert.Len(t, Emit(definition("A", "B"), -1, DefaultNames()).Decls, 1)
	assert.Len(t, Emit(definition("A", "B"), 0, DefaultNames()).Decls, 3)
	assert.Len(t, Emit(definition("A", "B"), 1, DefaultNames()).Decls, 3)
}

// interpret evaluates the annotated source, its generated code and a probe function, and returns
// the probe's result
func interpret(t *testing.T, src string, code []byte, probe string) bool {
	t.Helper()
	i := interp.New(interp.Options{})
	require.NoError(t, i.Use(stdlib.Symbols))

	_, err := i.Eval(src + "\n" + string(code) + "\n" + probe)
	require.NoError(t, err)

	v, err := i.Eval("chess.Probe")
	require.NoError(t, err)
	fn, ok := v.Interface().(func() bool)
	require.True(t, ok, "Probe has type %T", v.Interface())
	return fn()
}

func TestGeneratedCodeRuns(t *testing.T) {
	t.Run("with false marker", func(t *testing.T) {
		// yaegi mis-evaluates comparisons of implicitly repeated iota + 1 constants, the
		// compiled run below covers that form
		src := `package chess

// @boollike
type Answer int

const (
	Yes Answer = 1
	// @intofalse
	No Answer = 2
)
`
		res, err := NewDefault().Expand(typeNamed(t, src, "Answer"))
		require.NoError(t, err)

		ok := interpret(t, src, res.Code, `
func Probe() bool {
	return Yes.Not() == No && No.Not() == Yes &&
		Yes.Not().Not() == Yes &&
		Yes.Bool() && !No.Bool() &&
		AnswerFromBool(true) == Yes && AnswerFromBool(false) == No &&
		AnswerFromBool(Yes.Bool()) == Yes && AnswerFromBool(No.Bool()) == No &&
		Yes.Not().Bool() == !Yes.Bool()
}
`)
		assert.True(t, ok)
	})

	t.Run("negation only", func(t *testing.T) {
		src := `package chess

// @boollike
type Player uint8

const (
	White Player = iota
	Black
)
`
		res, err := NewDefault().Expand(typeNamed(t, src, "Player"))
		require.NoError(t, err)

		ok := interpret(t, src, res.Code, `
func Probe() bool {
	return White.Not() == Black && Black.Not() == White && White.Not().Not() == White
}
`)
		assert.True(t, ok)
	})

	t.Run("string variants", func(t *testing.T) {
		src := `package chess

// @boollike
type Answer string

const (
	No  Answer = "no" // @intofalse
	Yes Answer = "yes"
)
`
		res, err := NewDefault().Expand(typeNamed(t, src, "Answer"))
		require.NoError(t, err)

		ok := interpret(t, src, res.Code, `
func Probe() bool {
	return Yes.Not() == No && !No.Bool() && Yes.Bool() && AnswerFromBool(false) == No
}
`)
		assert.True(t, ok)
	})
}

func TestGeneratedCodeCompiles(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}
	gobin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not found")
	}

	res, err := NewDefault().Expand(typeNamed(t, answerSource, "Answer"))
	require.NoError(t, err)

	dir := t.TempDir()
	files := map[string]string{
		"go.mod":             "module example.com/chess\n\ngo 1.22\n",
		"answer.go":          strings.Replace(answerSource, "package chess", "package main", 1),
		"answer_boollike.go": "package main\n\n" + string(res.Code),
		"main.go": `package main

import "fmt"

func main() {
	fmt.Println(
		Yes.Not() == No, No.Not() == Yes, Yes.Not().Not() == Yes,
		Yes.Bool(), !No.Bool(),
		AnswerFromBool(true) == Yes, AnswerFromBool(false) == No,
		AnswerFromBool(Yes.Bool()) == Yes, AnswerFromBool(No.Bool()) == No,
		Yes.Not().Bool() == !Yes.Bool(),
	)
}
`,
	}
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}

	cmd := exec.Command(gobin, "run", ".")
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GOWORK=off", "GOFLAGS=-mod=mod")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "%s", out)
	assert.Equal(t, strings.TrimSpace(strings.Repeat("true ", 10)), strings.TrimSpace(string(out)))
}

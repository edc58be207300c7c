// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"strings"
	"testing"

	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"
)

func parseSource(t *testing.T, path, src string) *chorefile.Chorefile {
	t.Helper()
	cf, err := chorefile.Parse(strings.NewReader(src), path)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return cf
}

func TestResolveLaterSourceOverrides(t *testing.T) {
	t.Parallel()

	imported := parseSource(t, "/work/common.chore", "build:\n    echo imported\n\nfmt:\n    gofmt -l .\n")
	root := parseSource(t, "/work/chorefile", "build:\n    echo local\n")

	ns, err := Resolve([]*chorefile.Chorefile{imported, root}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	recipe, ok := ns.Lookup("build")
	if !ok {
		t.Fatal("build not found")
	}
	if recipe.SourcePath != "/work/chorefile" {
		t.Errorf("build resolved from %q, want the later source", recipe.SourcePath)
	}

	// The overriding definition keeps the original declaration slot.
	recipes := ns.Recipes()
	if len(recipes) != 2 || recipes[0].Name != "build" || recipes[1].Name != "fmt" {
		t.Errorf("declaration order changed by override: %v", recipeNames(recipes))
	}
}

func TestResolveNoOverrideProtected(t *testing.T) {
	t.Parallel()

	imported := parseSource(t, "/work/common.chore", "[no-override]\nbuild:\n    echo imported\n")
	root := parseSource(t, "/work/chorefile", "build:\n    echo local\n")

	_, err := Resolve([]*chorefile.Chorefile{imported, root}, Options{})
	var dup *DuplicateRecipeError
	if !errors.As(err, &dup) {
		t.Fatalf("Resolve() error = %v, want *DuplicateRecipeError", err)
	}
	if dup.Name != "build" {
		t.Errorf("duplicate name = %q, want %q", dup.Name, "build")
	}
	if !errors.Is(err, ErrResolution) {
		t.Errorf("error does not wrap ErrResolution: %v", err)
	}
}

func TestResolveAliasChain(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", `alias a := b
alias b := c
alias c := build

build:
    cargo build
`)

	ns, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	direct, _ := ns.Lookup("build")
	for _, alias := range []types.RecipeName{"a", "b", "c"} {
		got, ok := ns.Lookup(alias)
		if !ok {
			t.Fatalf("alias %q did not resolve", alias)
		}
		if got != direct {
			t.Errorf("alias %q resolved to %q, want %q", alias, got.Name, direct.Name)
		}
	}
}

func TestResolveAliasCycle(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", `alias a := b
alias b := a

build:
    cargo build
`)

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	var cycle *AliasCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("Resolve() error = %v, want *AliasCycleError", err)
	}
	if !errors.Is(err, ErrResolution) {
		t.Errorf("error does not wrap ErrResolution: %v", err)
	}
}

func TestResolveAliasDepthLimit(t *testing.T) {
	t.Parallel()

	src := `alias a1 := a2
alias a2 := a3
alias a3 := build

build:
    cargo build
`
	root := parseSource(t, "/work/chorefile", src)

	if _, err := Resolve([]*chorefile.Chorefile{root}, Options{AliasDepthLimit: 8}); err != nil {
		t.Fatalf("Resolve() with generous limit error = %v", err)
	}

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{AliasDepthLimit: 2})
	var depth *AliasDepthError
	if !errors.As(err, &depth) {
		t.Fatalf("Resolve() error = %v, want *AliasDepthError", err)
	}
}

func TestResolveUnresolvedAlias(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", "alias b := bild\n\nbuild:\n    cargo build\n")

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	var target *AliasTargetError
	if !errors.As(err, &target) {
		t.Fatalf("Resolve() error = %v, want *AliasTargetError", err)
	}
	if target.Alias != "b" || target.Target != "bild" {
		t.Errorf("alias error = %+v", target)
	}
}

func TestResolveAliasCollidesWithRecipe(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", "alias build := test\n\nbuild:\n    true\n\ntest:\n    true\n")

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	var collision *AliasCollisionError
	if !errors.As(err, &collision) {
		t.Fatalf("Resolve() error = %v, want *AliasCollisionError", err)
	}
}

func TestResolveAttributeConflict(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", "[no-exit-message]\n[exit-message]\nbuild:\n    true\n")

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	var conflict *AttributeConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Resolve() error = %v, want *AttributeConflictError", err)
	}
	if conflict.Recipe != "build" {
		t.Errorf("conflict recipe = %q, want %q", conflict.Recipe, "build")
	}
}

func TestResolveDefaultSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		imported    string
		root        string
		wantDefault types.RecipeName
		wantNone    bool
	}{
		{
			name:        "first parameterless recipe in root",
			root:        "deploy env:\n    echo {{env}}\n\nbuild:\n    true\n\ntest:\n    true\n",
			wantDefault: "build",
		},
		{
			name:        "explicit default wins over declaration order",
			root:        "build:\n    true\n\n[default]\ntest:\n    true\n",
			wantDefault: "test",
		},
		{
			name:        "explicit default may live in an import",
			imported:    "[default]\nfmt:\n    gofmt -l .\n",
			root:        "build:\n    true\n",
			wantDefault: "fmt",
		},
		{
			name:        "root override keeps the root declaration order",
			imported:    "fmt:\n    gofmt -l .\n",
			root:        "build:\n    true\n\nfmt:\n    goimports -l .\n",
			wantDefault: "build",
		},
		{
			name:        "private recipe still governs default selection",
			root:        "[private]\nprep:\n    true\n\nbuild:\n    true\n",
			wantDefault: "prep",
		},
		{
			name:        "imported recipes do not become the implicit default",
			imported:    "fmt:\n    gofmt -l .\n",
			root:        "deploy env:\n    echo {{env}}\n",
			wantNone:    true,
		},
		{
			name:     "no parameterless recipe means no default",
			root:     "deploy env:\n    echo {{env}}\n",
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var files []*chorefile.Chorefile
			if tt.imported != "" {
				files = append(files, parseSource(t, "/work/common.chore", tt.imported))
			}
			files = append(files, parseSource(t, "/work/chorefile", tt.root))

			ns, err := Resolve(files, Options{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			got, ok := ns.Default()
			if tt.wantNone {
				if ok {
					t.Errorf("Default() = %q, want none", got)
				}
				return
			}
			if !ok || got != tt.wantDefault {
				t.Errorf("Default() = %q, %v, want %q", got, ok, tt.wantDefault)
			}
		})
	}
}

func TestResolveDuplicateDefault(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", "[default]\nbuild:\n    true\n\n[default]\ntest:\n    true\n")

	_, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	var dup *DuplicateDefaultError
	if !errors.As(err, &dup) {
		t.Fatalf("Resolve() error = %v, want *DuplicateDefaultError", err)
	}
}

func TestNamespaceAliasesFor(t *testing.T) {
	t.Parallel()

	root := parseSource(t, "/work/chorefile", "alias b := build\nalias bb := build\n\nbuild:\n    true\n")

	ns, err := Resolve([]*chorefile.Chorefile{root}, Options{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	got := ns.AliasesFor("build")
	if len(got) != 2 || got[0] != "b" || got[1] != "bb" {
		t.Errorf("AliasesFor(build) = %v, want [b bb]", got)
	}
}

func recipeNames(recipes []*chorefile.Recipe) []types.RecipeName {
	names := make([]types.RecipeName, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	return names
}

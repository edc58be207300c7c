// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalogCompleteness(t *testing.T) {
	t.Parallel()

	want := []Id{
		ChorefileNotFoundId,
		ChorefileParseErrorId,
		MissingImportId,
		RecipeNotFoundId,
		AliasCycleId,
		AttributeConflictId,
		DuplicateRecipeId,
		ShellNotFoundId,
		ConfigLoadFailedId,
	}

	ids := Ids()
	if len(ids) != len(want) {
		t.Fatalf("Ids() = %v, want %d entries", ids, len(want))
	}
	for _, id := range want {
		entry := ById(id)
		if entry == nil {
			t.Errorf("ById(%d) = nil, want a catalog entry", id)
			continue
		}
		if entry.Id() != id {
			t.Errorf("ById(%d).Id() = %d", id, entry.Id())
		}
		if strings.TrimSpace(string(entry.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
}

func TestByIdUnknown(t *testing.T) {
	t.Parallel()

	if got := ById(Id(9999)); got != nil {
		t.Errorf("ById(9999) = %+v, want nil", got)
	}
}

func TestRender(t *testing.T) {
	orig := render
	t.Cleanup(func() { render = orig })

	var rendered string
	render = func(in, stylePath string) (string, error) {
		rendered = in
		return in, nil
	}

	entry := &Issue{
		id:       RecipeNotFoundId,
		mdMsg:    "# Unknown recipe",
		docLinks: []HttpLink{"https://example.org/docs/recipes"},
	}
	out, err := entry.Render("auto")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != rendered {
		t.Errorf("Render() = %q, want the rendered text", out)
	}
	if !strings.Contains(rendered, "# Unknown recipe") {
		t.Errorf("rendered text lacks the message: %q", rendered)
	}
	if !strings.Contains(rendered, "See also") || !strings.Contains(rendered, "https://example.org/docs/recipes") {
		t.Errorf("rendered text lacks the link section: %q", rendered)
	}
}

func TestLinksAreCloned(t *testing.T) {
	t.Parallel()

	entry := &Issue{
		id:       ShellNotFoundId,
		mdMsg:    "msg",
		docLinks: []HttpLink{"https://example.org/a"},
		extLinks: []HttpLink{"https://example.org/b"},
	}

	docs := entry.DocLinks()
	docs[0] = "mutated"
	if entry.docLinks[0] != "https://example.org/a" {
		t.Error("DocLinks() exposes internal slice")
	}

	exts := entry.ExtLinks()
	exts[0] = "mutated"
	if entry.extLinks[0] != "https://example.org/b" {
		t.Error("ExtLinks() exposes internal slice")
	}
}

package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/models"
)

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t)
	env.client.SearchVal = []models.SearchResult{
		{Title: "Меркурий", Snippet: "ближайшая к Солнцу планета"},
		{Title: "Меркурий (мифология)", Snippet: "бог торговли"},
		{Title: "Меркурий (значения)"},
	}

	if err := env.run("search", "Меркурий"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.stdout.String()
	for _, want := range []string{"1. Меркурий", "ближайшая к Солнцу планета", "2. Меркурий (мифология)", "3. Меркурий (значения)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if search, page, summary := env.client.Calls(); search != 1 || page != 0 || summary != 0 {
		t.Errorf("calls = %d/%d/%d, want search only", search, page, summary)
	}
}

func TestSearchCommand_Limit(t *testing.T) {
	env := newTestEnv(t)
	env.client.SearchVal = []models.SearchResult{{Title: "A"}, {Title: "B"}, {Title: "C"}}

	if err := env.run("search", "-n", "2", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(env.stdout.String(), "3. C") {
		t.Errorf("limit not applied:\n%s", env.stdout.String())
	}
}

func TestSearchCommand_NoResults(t *testing.T) {
	env := newTestEnv(t)
	env.client.SearchVal = nil

	if err := env.run("search", "qwxzzv"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(env.stdout.String()) != models.NotFoundText {
		t.Errorf("output = %q", env.stdout.String())
	}
}

func TestSearchCommand_Error(t *testing.T) {
	env := newTestEnv(t)
	env.client.SearchErr = apierrors.NewNetworkError("search", errors.New("offline"))

	err := env.run("search", "Python")
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected a network error, got %v", err)
	}
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("search"); err == nil {
		t.Error("expected an error without a query")
	}
}

package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/router"
	"github.com/abhisek/feprep/internal/screens/category"
	"github.com/abhisek/feprep/internal/screens/practice"
)

func sized(t *testing.T) AppModel {
	t.Helper()
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestApp_RootIsDashboard(t *testing.T) {
	m := sized(t)
	if got := m.router.Active().Title(); got != "Home" {
		t.Fatalf("expected dashboard as root, got %q", got)
	}
	content := m.router.View(100, 30)
	if !strings.Contains(content, "Statics") {
		t.Fatalf("expected categories on the dashboard:\n%s", content)
	}
}

func TestApp_EscAtRootDoesNothing(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Fatal("expected no command when esc is pressed on the root screen")
	}
}

func TestApp_EscPopsPushedScreen(t *testing.T) {
	m := sized(t)
	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = updated.(AppModel)
	if cmd == nil {
		t.Fatal("expected push command from the category menu")
	}
	updated, _ = m.Update(cmd())
	m = updated.(AppModel)
	if _, ok := m.router.Active().(*category.CategoryScreen); !ok {
		t.Fatalf("expected category screen, got %T", m.router.Active())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}

func TestApp_FooterHintsFollowDepth(t *testing.T) {
	m := sized(t)
	for _, h := range m.footerHints(m.router.Active()) {
		if h.Key == "Esc" {
			t.Fatal("root screen should not offer Esc")
		}
	}

	m.router.Push(category.New(mustCategory(t), practice.Options{}))
	var hasEsc bool
	for _, h := range m.footerHints(m.router.Active()) {
		hasEsc = hasEsc || h.Key == "Esc"
	}
	if !hasEsc {
		t.Fatal("pushed screen should offer Esc")
	}
}

func mustCategory(t *testing.T) catalog.Category {
	t.Helper()
	c, ok := catalog.CategoryByKey("statics")
	if !ok {
		t.Fatal("statics category missing")
	}
	return c
}

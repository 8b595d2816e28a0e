package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testData() *BrowseData {
	return &BrowseData{Pages: []PageInfo{
		{Source: "index.md", Output: "index.html", Title: "Home", Status: StatusFresh},
		{Source: "posts/draft.md", Output: "posts/draft.html", Title: "Draft", Status: StatusNew},
	}}
}

func TestPageStatusString(t *testing.T) {
	tests := []struct {
		status PageStatus
		want   string
	}{
		{StatusFresh, "✓ fresh"},
		{StatusStale, "→ stale"},
		{StatusNew, "+ new"},
		{StatusBroken, "⚠ broken"},
		{PageStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("PageStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestBrowseShowsPages(t *testing.T) {
	m := InitBrowseModel(nil)
	updated, _ := m.Update(BrowseMsg{Data: testData()})
	view := updated.View()

	for _, want := range []string{"Pages: 2", "index.md", "Draft", "+ new"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseShowsError(t *testing.T) {
	m := InitBrowseModel(nil)
	updated, _ := m.Update(BrowseMsg{Err: errors.New("no content dir")})
	if view := updated.View(); !strings.Contains(view, "no content dir") {
		t.Errorf("View() should show the error:\n%s", view)
	}
}

func TestBrowsePreviewLoadsDiff(t *testing.T) {
	var requested string
	m := InitBrowseModel(func(source string) (string, error) {
		requested = source
		return "+<p>changed</p>", nil
	})

	var model tea.Model = m
	model, _ = model.Update(BrowseMsg{Data: testData()})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return a command that loads the diff")
	}

	msg := cmd()
	if requested != "index.md" {
		t.Errorf("diff requested for %q, want index.md", requested)
	}

	model, _ = model.Update(msg)
	view := model.View()
	if !strings.Contains(view, "Rebuild preview: index.md") {
		t.Errorf("View() should show the preview header:\n%s", view)
	}
	if !strings.Contains(view, "changed") {
		t.Errorf("View() should show the diff:\n%s", view)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if view := model.View(); !strings.Contains(view, "Pages: 2") {
		t.Errorf("esc should return to the table:\n%s", view)
	}
}

func TestBrowseEmptyDiff(t *testing.T) {
	m := InitBrowseModel(nil)
	var model tea.Model = m
	model, _ = model.Update(BrowseMsg{Data: testData()})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(DiffMsg{})

	if view := model.View(); !strings.Contains(view, "up to date") {
		t.Errorf("empty diff should report no changes:\n%s", view)
	}
}

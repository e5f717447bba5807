package notice

import (
	"strings"
	"testing"
)

func TestNoticeView(t *testing.T) {
	n := New("Listen", "audio player unavailable")
	if n.Title() != "Listen" {
		t.Errorf("Title() = %q", n.Title())
	}
	if view := n.View(80, 20); !strings.Contains(view, "audio player unavailable") {
		t.Errorf("View() missing message:\n%s", view)
	}
	if cmd := n.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

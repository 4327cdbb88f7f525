package main

import (
	"strings"
	"testing"

	"transcriptor/internal/catalog"
)

func TestRenderResourceTable(t *testing.T) {
	longTitle := strings.Repeat("x", 60)
	resources := []*catalog.Resource{
		{ID: 1, Status: catalog.StatusPending, Kind: catalog.KindVideo, Title: "Short", DurationSeconds: 95.5},
		{ID: 2, Status: catalog.StatusCompleted, Kind: catalog.KindAudio, Title: longTitle},
	}

	out := renderResourceTable(resources)

	for _, want := range []string{"ID", "Status", "Kind", "Title", "Duration", "Short", "pending", "completed", "00:01:35,500"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, longTitle) {
		t.Errorf("long title was not truncated:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("x", titleColumnWidth-3)+"...") {
		t.Errorf("expected truncated title in output:\n%s", out)
	}
}

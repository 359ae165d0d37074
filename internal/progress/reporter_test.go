package progress

import (
	"bytes"
	"testing"
)

func TestLineReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LineReporter{Out: &buf, Description: "Exporting site"}
	r.Start(2)
	r.Update(1, "/rss.xml")
	r.Update(2, "/feed.json")
	r.Finish()

	want := "Exporting site: 2 items\n[1/2] /rss.xml\n[2/2] /feed.json\nExporting site: done\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNewReporterUnderCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*LineReporter); !ok {
		t.Error("CI should get a LineReporter")
	}
}

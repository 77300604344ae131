package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winsnap/internal/extract"
	"github.com/1broseidon/winsnap/internal/native/nativetest"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

func strPtr(s string) *string { return &s }

func sampleWindows() []Window {
	return []Window{
		{ID: 7, OwnerPID: 123, Alpha: 1, OwnerName: strPtr("Finder"), Bounds: extract.Rect{W: 800, H: 600}},
		{ID: 9, OwnerPID: 456, Alpha: 0.8, OwnerName: strPtr("Terminal"), Name: strPtr("bash"), Bounds: extract.Rect{X: 100, Y: 50, W: 400, H: 300}},
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, sampleWindows(), Options{}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := strings.Join([]string{
		"alpha:  1",
		"owner:  Finder",
		"bounds: w=800 h=600 x=0 y=0",
		"pid:    123",
		"id:     7",
		"",
		"alpha:  0.8",
		"owner:  Terminal",
		"title:  bash",
		"bounds: w=400 h=300 x=100 y=50",
		"pid:    456",
		"id:     9",
		"",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("text output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWrite_TextTruncatesLongTitles(t *testing.T) {
	wins := []Window{{ID: 1, Name: strPtr(strings.Repeat("x", 50))}}
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, wins, Options{MaxWidth: 20}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "title:") {
			if len([]rune(line)) != 20 || !strings.HasSuffix(line, "...") {
				t.Fatalf("title line not truncated: %q", line)
			}
			return
		}
	}
	t.Fatal("no title line")
}

func TestWrite_StructuredFormats(t *testing.T) {
	var jbuf bytes.Buffer
	if err := Write(&jbuf, FormatJSON, sampleWindows(), Options{}); err != nil {
		t.Fatalf("Write(json) error: %v", err)
	}
	var decoded []Window
	if err := json.Unmarshal(jbuf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Name != nil || *decoded[1].Name != "bash" {
		t.Fatalf("unexpected json windows: %+v", decoded)
	}

	var ybuf bytes.Buffer
	if err := Write(&ybuf, FormatYAML, sampleWindows(), Options{}); err != nil {
		t.Fatalf("Write(yaml) error: %v", err)
	}
	var ydecoded []map[string]any
	if err := yaml.Unmarshal(ybuf.Bytes(), &ydecoded); err != nil {
		t.Fatalf("yaml output invalid: %v", err)
	}
	if _, ok := ydecoded[0]["name"]; ok {
		t.Fatalf("absent title should be omitted from yaml: %v", ydecoded[0])
	}
	if ydecoded[1]["owner_name"] != "Terminal" {
		t.Fatalf("owner_name = %v, want Terminal", ydecoded[1]["owner_name"])
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "yaml": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestFromBatch_ExcludesOwnersAndCopies(t *testing.T) {
	reg := nativetest.New(
		nativetest.Window{ID: 1, OwnerPID: 1, Alpha: 1, W: 1, H: 1, OwnerName: "Dock"}.Dict(),
		nativetest.Window{ID: 2, OwnerPID: 2, Alpha: 1, W: 1, H: 1, OwnerName: "Terminal", Name: "zsh"}.Dict(),
		nativetest.Window{ID: 3, OwnerPID: 3, Alpha: 1, W: 1, H: 1}.Dict(),
	)

	var wins []Window
	err := snapshot.With(reg, snapshot.Options{}, func(s *snapshot.Snapshot) error {
		b, err := s.MaterializeAll()
		if err != nil {
			return err
		}
		defer b.Release()
		wins = FromBatch(b, []string{"Dock"})
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot error: %v", err)
	}
	if len(wins) != 2 || wins[0].ID != 2 || wins[1].ID != 3 {
		t.Fatalf("unexpected windows: %+v", wins)
	}
	if wins[0].Name == nil || *wins[0].Name != "zsh" {
		t.Fatal("title should survive record release")
	}
}

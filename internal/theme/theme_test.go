package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#FF3B30", want: color.RGBA{255, 59, 48, 255}},
		{in: "#00000080", want: color.RGBA{0, 0, 0, 128}},
		{in: "FF3B30", wantErr: true},
		{in: "#FFF", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseColor(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
		if !tc.wantErr && Hex(got) != strings.ToUpper(tc.in) {
			t.Fatalf("Hex(%+v) = %q, want %q", got, Hex(got), tc.in)
		}
	}
}

func TestParse(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: midnight\n# comment\nbackground: #101010\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "midnight" {
		t.Fatalf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{16, 16, 16, 255}) {
		t.Fatalf("background = %+v", th.Background)
	}
	if th.ButtonText != Default().ButtonText {
		t.Fatalf("unset fields should keep defaults")
	}
	if _, err := Parse(strings.NewReader("Background: red\n")); err == nil {
		t.Fatal("expected error for invalid colour")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	src := Dark()
	var sb strings.Builder
	for _, f := range src.Fields() {
		sb.WriteString(f.Key + ": " + Hex(f.Value) + "\n")
	}
	got, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got.Name = src.Name
	if *got != *src {
		t.Fatalf("round trip = %+v, want %+v", got, src)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "solar.theme"), []byte("Background: #FDF6E3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("dark")
	if err != nil || th.Name != "dark" {
		t.Fatalf("Load(dark) = %v, %v", th, err)
	}
	th, err = l.Load("solar")
	if err != nil {
		t.Fatalf("Load(solar): %v", err)
	}
	if th.Background != (color.RGBA{0xFD, 0xF6, 0xE3, 255}) {
		t.Fatalf("background = %+v", th.Background)
	}
	th, err = l.Load(filepath.Join(dir, "solar.theme"))
	if err != nil || th.Background.R != 0xFD {
		t.Fatalf("Load(path) = %v, %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

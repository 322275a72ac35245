package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
)

func TestDecodePartial(t *testing.T) {
	p, err := Decode(strings.NewReader("number_of_loops = 120\npad_size = 0.8\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := meander.DefaultParams()
	want.NumberOfLoops = 120
	want.PadSize = 0.8
	if p != want {
		t.Errorf("Decode = %+v, want %+v", p, want)
	}
}

func TestDecodeEmpty(t *testing.T) {
	p, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if p != meander.DefaultParams() {
		t.Errorf("empty file should yield defaults, got %+v", p)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "number_of_loops = = 3"},
		{"wrong type", `height = "tall"`},
		{"unknown key", "loops = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDecodeOver(t *testing.T) {
	base := meander.DefaultParams()
	base.Height = 4

	p, err := DecodeOver(strings.NewReader("snake_thickness = 0.01"), base)
	if err != nil {
		t.Fatal(err)
	}
	if p.Height != 4 || p.SnakeThickness != 0.01 {
		t.Errorf("DecodeOver = %+v", p)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := meander.DefaultParams()
	in.Filename = "chip.dxf"
	in.NumberOfLoops = 42

	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "number_of_loops = 42") {
		t.Errorf("encoded toml missing loops:\n%s", buf.String())
	}

	out, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip.toml")
	if err := os.WriteFile(path, []byte("height = 5.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Height != 5 {
		t.Errorf("Height = %v, want 5", p.Height)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeIOFailure) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	_ = os.WriteFile(bad, []byte("nope = 1"), 0644)
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad file error = %v", err)
	}
}

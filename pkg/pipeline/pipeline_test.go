package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dxf", false},
		{"svg", false},
		{"json", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"DXF", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want %s", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"dxf", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"dxf", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats([]string{"dxf", "dxf"}); err == nil {
		t.Error("Duplicate format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" DXF, svg,,json ")
	want := []string{"dxf", "svg", "json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if ParseFormats("") != nil {
		t.Error("empty string should yield no formats")
	}
}

func TestContentType(t *testing.T) {
	if ContentType(FormatSVG) != "image/svg+xml" {
		t.Errorf("svg content type = %s", ContentType(FormatSVG))
	}
	if ContentType("weird") != "application/octet-stream" {
		t.Error("unknown format should fall back to octet-stream")
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Params: meander.DefaultParams()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDXF {
		t.Errorf("Formats should be [dxf], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// idempotent
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before.Formats, opts.Formats) || before.PNGScale != opts.PNGScale {
		t.Error("second call changed options")
	}

	bad := Options{PNGScale: -1}
	if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative scale error = %v", err)
	}
}

func TestParamsHashIgnoresFilename(t *testing.T) {
	a := meander.DefaultParams()
	b := a
	b.Filename = "other.dxf"
	c := a
	c.NumberOfLoops = 201

	ha, err := ParamsHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := ParamsHash(b)
	hc, _ := ParamsHash(c)

	if ha != hb {
		t.Error("filename should not affect the hash")
	}
	if ha == hc {
		t.Error("loop count should affect the hash")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Params:  meander.DefaultParams(),
		Formats: []string{FormatDXF, FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(res.Artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(res.Artifacts))
	}
	if !bytes.HasPrefix(res.Artifacts[FormatDXF], []byte("  0\nSECTION\n")) {
		t.Error("dxf artifact does not start with a section")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg ")) {
		t.Error("svg artifact is not svg")
	}
	if res.Stats.EntityCount != 6 {
		t.Errorf("EntityCount = %d, want 6", res.Stats.EntityCount)
	}
	if res.Stats.PointCount != res.Drawing.PointCount() {
		t.Errorf("PointCount = %d, want %d", res.Stats.PointCount, res.Drawing.PointCount())
	}
	if res.ParamsHash == "" {
		t.Error("ParamsHash should be set")
	}
	if res.CacheInfo.RenderHit || len(res.CacheInfo.Hits) != 0 {
		t.Error("null cache should never hit")
	}
}

func TestExecuteInvalidParams(t *testing.T) {
	p := meander.DefaultParams()
	p.PadsNeckSize = 2

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Params: p})
	if !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidParameter)
	}
}

func TestExecuteInvalidFormat(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Params:  meander.DefaultParams(),
		Formats: []string{"gerber"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	opts := Options{Params: meander.DefaultParams(), Formats: []string{FormatDXF, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || len(second.CacheInfo.Hits) != 2 {
		t.Errorf("second run cache info = %+v, want full hit", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatDXF], second.Artifacts[FormatDXF]) {
		t.Error("cached dxf differs from rendered dxf")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(third.CacheInfo.Hits) != 0 {
		t.Error("refresh should bypass cache reads")
	}

	opts.Refresh = false
	opts.Params.Filename = "renamed.dxf"
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !fourth.CacheInfo.RenderHit {
		t.Error("renaming the output should still hit the cache")
	}
}

func TestExecuteCacheMissesAcrossBuilds(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Params: meander.DefaultParams(), Formats: []string{FormatDXF}}

	old := NewRunner(fc, cache.DefaultKeyer{Build: "v1.0.0+aaa"}, nil)
	if _, err := old.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	upgraded := NewRunner(fc, cache.DefaultKeyer{Build: "v1.1.0+bbb"}, nil)
	res, err := upgraded.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.CacheInfo.Hits) != 0 {
		t.Error("artifacts cached by another build should not be served")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	generates, renders int
	lastErr            error
}

func (h *countingHooks) OnGenerateComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	h.generates++
	h.lastErr = err
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}

func TestExecuteEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Params: meander.DefaultParams()}); err != nil {
		t.Fatal(err)
	}
	if hooks.generates != 1 || hooks.renders != 1 {
		t.Errorf("hooks called generate=%d render=%d, want 1/1", hooks.generates, hooks.renders)
	}

	p := meander.DefaultParams()
	p.Height = -1
	_, _ = r.Execute(context.Background(), Options{Params: p})
	if hooks.lastErr == nil {
		t.Error("failed generation should report its error to hooks")
	}
}

func TestOutputPaths(t *testing.T) {
	paths, err := OutputPaths("out/chip.dxf", []string{"dxf", "svg", "json"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"dxf":  "out/chip.dxf",
		"svg":  "out/chip.svg",
		"json": "out/chip.json",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("OutputPaths = %v, want %v", paths, want)
	}

	if _, err := OutputPaths("", []string{"dxf"}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("empty output error = %v", err)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"dxf": []byte("dxf"),
		"svg": []byte("<svg/>"),
	}

	written, err := WriteArtifacts(artifacts, filepath.Join(dir, "Untitled.dxf"))
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 || !strings.HasSuffix(written[0], "Untitled.dxf") || !strings.HasSuffix(written[1], "Untitled.svg") {
		t.Errorf("written = %v", written)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Untitled.svg"))
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg content = %q, err %v", data, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want 2 (no temp files left)", len(entries))
	}
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.dxf"), []byte("x"))
	if !errors.Is(err, errors.ErrCodeIOFailure) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeIOFailure)
	}
}

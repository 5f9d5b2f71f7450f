package hxsplitecho

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pthm/hxsplit/lib/ident"
	"github.com/pthm/hxsplit/lib/manifest"
)

const chartID ident.ID = "chart_1a2b3c4d"

func writeBuild(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "chunks"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{
		"main.js":         "main",
		"chunks/chart.js": "chart",
	} {
		if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	err := manifest.Write(filepath.Join(dir, "manifest.json"), &manifest.AssetBuild{
		ID:      "b1",
		Default: true,
		Entry:   map[string]manifest.AssetsEntry{"main": {Scripts: []manifest.Asset{{Source: "main.js"}}}},
		Async: map[ident.ID]manifest.AssetsEntry{
			chartID: {Scripts: []manifest.Asset{{Source: "chunks/chart.js"}, {Source: "main.js"}}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMount(t *testing.T) {
	e := echo.New()
	s, err := Mount(e, WithDir(writeBuild(t)))
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if s.Query == nil {
		t.Fatal("Mount returned an incomplete server")
	}
}

func TestMountMissingManifest(t *testing.T) {
	if _, err := Mount(echo.New(), WithDir(t.TempDir())); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}

func TestServeAssets(t *testing.T) {
	e := echo.New()
	if _, err := Mount(e, WithDir(writeBuild(t)), WithKey(make([]byte, 32))); err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	rec := get(e, "/assets/chunks/chart.js")
	if rec.Code != http.StatusOK || rec.Body.String() != "chart" {
		t.Fatalf("chunk: %d %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "immutable") {
		t.Errorf("chunk Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}

	if rec := get(e, "/assets/main.js"); rec.Header().Get("Cache-Control") != "" {
		t.Errorf("entry should not be cached forever")
	}
	if rec := get(e, "/assets/manifest.json"); rec.Code != http.StatusNotFound {
		t.Errorf("manifest served with status %d", rec.Code)
	}
	if rec := get(e, "/assets/../../etc/passwd"); rec.Code == http.StatusOK {
		t.Error("path traversal served a file")
	}
}

func TestMountGroupWithPath(t *testing.T) {
	e := echo.New()
	g := e.Group("/app")
	if _, err := MountGroup(g, WithDir(writeBuild(t)), WithPath("/static")); err != nil {
		t.Fatalf("MountGroup failed: %v", err)
	}
	if rec := get(e, "/app/static/main.js"); rec.Code != http.StatusOK {
		t.Errorf("group asset status = %d", rec.Code)
	}
}

func TestAssetsAndState(t *testing.T) {
	e := echo.New()
	s, err := Mount(e, WithDir(writeBuild(t)), WithSealed())
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	s.Registry(c).Set(chartID, "rendered")
	var buf bytes.Buffer
	if err := s.Assets(c, chartID).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Assets render failed: %v", err)
	}
	want := `<script src="/assets/main.js" type="module"></script><script src="/assets/chunks/chart.js" type="module"></script>`
	if buf.String() != want {
		t.Errorf("Assets() =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := s.State(c).Render(context.Background(), &buf); err != nil {
		t.Fatalf("State render failed: %v", err)
	}
	if !strings.Contains(buf.String(), `id="__hxsplit_state"`) || !strings.Contains(buf.String(), `"rendered"`) {
		t.Errorf("State() = %s", buf.String())
	}
}

func TestRegistryPerRequest(t *testing.T) {
	e := echo.New()
	s, err := Mount(e, WithDir(writeBuild(t)))
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	first := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	second := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if s.Registry(first) != s.Registry(first) {
		t.Fatal("one request got two registries")
	}
	s.Registry(first).Set(chartID, "first page only")

	if _, ok := s.Registry(second).Get(chartID); ok {
		t.Error("module loaded by one request leaked into another")
	}
	var buf bytes.Buffer
	if err := s.State(second).Render(context.Background(), &buf); err != nil {
		t.Fatalf("State render failed: %v", err)
	}
	if strings.Contains(buf.String(), "first page only") {
		t.Errorf("State() of second request = %s", buf.String())
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	s, err := Mount(e, WithDir(writeBuild(t)))
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	if err := Render(c, s.State(c)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

// Package hxsplitecho provides Echo framework integration for hxsplit.
//
// Mount serves the build output and answers asset queries for pages:
//
//	e := echo.New()
//	s, err := hxsplitecho.Mount(e, hxsplitecho.WithDir("dist"))
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	s, err := hxsplitecho.MountGroup(g, hxsplitecho.WithDir("dist"))
//
// Handlers load modules through the request's registry, and templates then
// include the page's assets and that registry's state:
//
//	chart := ChartModule.Handle(hxsplit.WithRegistry(s.Registry(c)))
//	...
//	@s.Assets(c, chartID)
//	@s.State(c)
package hxsplitecho

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxsplit"
	"github.com/pthm/hxsplit/lib/ident"
	"github.com/pthm/hxsplit/lib/manifest"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key      []byte
	path     string
	dir      string
	manifest string
	sealed   bool
}

// WithKey sets the key the module registry snapshot is signed with.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path prefix assets are served under.
// Defaults to "/assets/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithDir sets the build output directory. Defaults to "dist".
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithManifest sets the manifest path. Defaults to manifest.json in the
// output directory.
func WithManifest(path string) Option {
	return func(o *options) {
		o.manifest = path
	}
}

// WithSealed encrypts the registry snapshot embedded in pages.
func WithSealed() Option {
	return func(o *options) {
		o.sealed = true
	}
}

// registryKey is the echo.Context key of the request's registry.
const registryKey = "hxsplit.registry"

// Server serves one build.
type Server struct {
	Query  *manifest.Query
	key    []byte
	path   string
	dir    string
	sealed bool
	// hidden is the manifest's path inside dir, never served.
	hidden string
}

// Mount loads the manifest and serves the build output on an Echo instance.
//
//	e := echo.New()
//	s, err := hxsplitecho.Mount(e)
//
//	// With options:
//	s, err := hxsplitecho.Mount(e, hxsplitecho.WithKey(key), hxsplitecho.WithPath("/static/"))
func Mount(e *echo.Echo, opts ...Option) (*Server, error) {
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	e.GET(s.path+"*", s.serveAsset)
	return s, nil
}

// MountGroup serves the build output on an Echo group.
// This allows assets to share middleware with the group.
func MountGroup(g *echo.Group, opts ...Option) (*Server, error) {
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	g.GET(s.path+"*", s.serveAsset)
	return s, nil
}

func newServer(opts []Option) (*Server, error) {
	o := &options{path: "/assets/", dir: "dist"}
	for _, opt := range opts {
		opt(o)
	}
	if !strings.HasSuffix(o.path, "/") {
		o.path += "/"
	}
	if o.manifest == "" {
		o.manifest = filepath.Join(o.dir, "manifest.json")
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("hxsplitecho: failed to generate random key: %w", err)
		}
	}

	manifests, err := manifest.LoadAll(o.manifest)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Query:  manifest.NewQuery(manifests, nil, nil),
		key:    key,
		path:   o.path,
		dir:    o.dir,
		sealed: o.sealed,
	}
	if rel, err := filepath.Rel(o.dir, o.manifest); err == nil && !strings.HasPrefix(rel, "..") {
		s.hidden = filepath.ToSlash(rel)
	}
	return s, nil
}

// serveAsset serves a file from the output directory. Chunk names carry a
// content hash, so they are cached indefinitely.
func (s *Server) serveAsset(c echo.Context) error {
	name := strings.TrimPrefix(path.Clean("/"+c.Param("*")), "/")
	if name == "" || name == s.hidden {
		return echo.ErrNotFound
	}
	if strings.HasPrefix(name, "chunks/") {
		c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	return c.File(filepath.Join(s.dir, filepath.FromSlash(name)))
}

// Assets renders the entry's tags followed by the tags of the deferred
// modules the page uses.
func (s *Server) Assets(c echo.Context, ids ...ident.ID) templ.Component {
	assets, err := s.Query.Assets(manifest.Options{Async: manifest.Use(ids...)})
	if err != nil {
		c.Logger().Errorf("hxsplitecho: %v", err)
		return templ.NopComponent
	}
	return manifest.Tags(assets, s.path)
}

// Registry returns the request's module registry, creating it on first use.
// Each request gets its own, so a page only carries the modules its own
// render loaded.
func (s *Server) Registry(c echo.Context) *hxsplit.Registry {
	if reg, ok := c.Get(registryKey).(*hxsplit.Registry); ok {
		return reg
	}
	reg := hxsplit.NewRegistry(hxsplit.WithSnapshotKey(s.key))
	c.Set(registryKey, reg)
	return reg
}

// State renders the request registry's state for the browser runtime.
func (s *Server) State(c echo.Context) templ.Component {
	return hxsplit.StateScript(s.Registry(c), s.sealed)
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxsplitecho.Render(c, page())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return component.Render(c.Request().Context(), c.Response())
}

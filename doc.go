// Package hxsplit provides code splitting for server-rendered pages: deferred
// imports that load on demand, share one in-flight load between callers, and
// hand already-loaded modules from the server render to the browser.
//
// # Core Concepts
//
// Every deferred module has a stable id derived from its resolved path (see
// lib/ident). The build and both runtimes agree on ids through the module
// descriptors written to the asset manifest.
//
//	resolver := hxsplit.NewResolver(root, manifests)
//	var Chart = hxsplit.Ref(resolver, "src/chart.ts", loadChart)
//
// A Handle is the run-time form of a deferred import:
//   - Load() starts or joins the import and returns a *Promise
//   - Loaded() reads the value synchronously when it is available
//   - Subscribe() observes every load attempt
//
// Concurrent Load calls receive the identical promise and the loader runs
// once. A failed load is not cached; the next Load retries.
//
// # Registry and Handoff
//
// Loaded modules are published into a Registry keyed by id. The server
// render embeds a snapshot of its registry in the page:
//
//	@hxsplit.StateScript(reg, false)
//
// and the browser process restores it before hydrating, so handles resolve
// synchronously without fetching or executing the module again:
//
//	reg.RestoreDocument(page, false)
//	if m, ok := hxsplit.NewHandle[Chart](id, load, hxsplit.WithRegistry(reg)).Loaded(); ok { ... }
//
// Snapshots are msgpack encoded and either signed (default) or sealed with
// AES-GCM. Server and browser must share the snapshot key.
//
// # Build
//
// lib/bundle is an esbuild plugin that splits deferred imports into their own
// chunks, rewrites each call site so the chunk's static dependencies load in
// parallel with it (lib/rewrite) and writes the asset manifest
// (lib/manifest). The hxsplit command wraps it:
//
//	hxsplit build --entry src/main.ts --outdir dist
//	hxsplit assets --manifest dist/manifest.json --async chart_12ab34cd
package hxsplit

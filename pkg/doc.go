// Package pkg provides the core libraries for gigcard social graphic rendering.
//
// # Overview
//
// Gigcard turns CMS content records (articles, concert reports, aftershow
// stories) into branded social-media graphics: feed (4:5) and story (9:16)
// PNGs in five fixed visual styles. The pkg directory is organized into
// four main areas:
//
//  1. [style], [content] - Closed registries and the content data model
//  2. [compose] - The compositor: paint pipeline, text stack, Canvas contract
//  3. [assets], [fonts], [cache], [httputil] - Asset and font infrastructure
//  4. [pipeline], [preview] - Orchestration for batch and interactive renders
//
// # Architecture
//
// The typical data flow through gigcard:
//
//	Content record (JSON)
//	         ↓
//	    [pipeline] options (validate, resolve keys, cache lookup)
//	         ↓
//	    [compose] engine (fixed paint order onto a Canvas)
//	         ↓
//	    [compose/ggcanvas] raster surface
//	         ↓
//	    PNG output
//
// # Quick Start
//
// Render one record to PNG bytes:
//
//	import (
//	    "context"
//	    "github.com/soundpress/gigcard/pkg/content"
//	    "github.com/soundpress/gigcard/pkg/pipeline"
//	)
//
//	item, _ := content.LoadFile("concert-report.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Content: item,
//	    Style:   "neon",
//	    Format:  "story",
//	})
//	// result.PNG holds the finished graphic
//
// # Main Packages
//
// [style] - Fixed catalogs of visual styles (industrial, minimal, gradient,
// bold, neon) and output formats. Pure lookup tables; unknown keys fail loud.
//
// [compose] - The compositor engine. One fixed paint order, one text stack,
// one greedy word-wrap, all behind a backend-agnostic Canvas contract so the
// batch and interactive targets cannot diverge in layout.
//
// [compose/ggcanvas] - Raster Canvas adapter on fogleman/gg, shared by the
// PNG-encoding batch path and the interactive preview.
//
// [assets] - Hero image and logo loading over HTTP or data: URLs with
// retries, caching, and graceful per-element degradation.
//
// [fonts] - Process-wide font registration and the single text measurement
// every render target uses.
//
// [pipeline] - Validate → load → render → encode with render caching,
// shared by the CLI and the HTTP service.
//
// [preview] - Debounced driver for the interactive terminal preview.
//
// [cache], [httputil], [errors], [observability], [config], [buildinfo] -
// Supporting infrastructure: file/redis/null caches, retrying HTTP fetches,
// coded errors, no-op instrumentation hooks, TOML configuration, and
// build-time version stamping.
package pkg

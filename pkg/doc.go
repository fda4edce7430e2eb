// Package pkg holds the libraries behind twatypes, which turns the Telegram
// Mini Apps reference page into TypeScript declarations.
//
// # Overview
//
// The page lists each type as a heading followed by a three-column table
// (field, type, description). Starting at WebApp, the resolver walks every
// type a table names until nothing new is found, and the renderers write the
// result.
//
//	reference page (HTML)
//	         ↓
//	    [document]  headings, tables, rows
//	         ↓
//	    [resolve] + [classify] + [signature] + [overrides]
//	         ↓
//	    [schema].Graph  (+ [events] table)
//	         ↓
//	    [render/typescript], [render/typegraph], JSON
//
// [pipeline] runs these stages end to end; [fetch] downloads the page
// through the [httputil] file cache.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil)
//	res, err := runner.Execute(ctx, pipeline.Options{Input: "webapps.html"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("index.d.ts", res.Artifacts[pipeline.FormatTS], 0o644)
//
// Methods whose argument types the page only describes in prose come from
// the override table in [overrides]; a method without an entry stops the
// run with MISSING_OVERRIDE rather than emitting a guessed signature.
package pkg

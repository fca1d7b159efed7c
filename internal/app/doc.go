// Package app provides the orchestration layer for the starcat application.
//
// # Overview
//
// This package wires together configuration, the catalog client, the fetch
// layer, the state engine, and the UI. It serves as the composition root
// where all dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config + env overrides
//	       ├─────> prefs.Load()         Read saved theme/page size
//	       ├─────> catalog.NewClient()  HTTP client for the catalog API
//	       ├─────> engine.New()         State engine (implicit first search)
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Runtime loop:
//	  UI key press → engine action → missing portions fetched (deduped)
//	    → new Selection published → UI subscription → redraw
//
// # Configuration Precedence
//
// The initial page size comes from the saved user preference when it is one
// of the offered sizes, falling back to the configured default. Everything
// else comes from config.
package app

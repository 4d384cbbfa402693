// Package graphhansard provides the entity resolution and interaction graph
// engine for parliamentary debate analysis: a canonical registry of
// legislators with time-bounded role tenures, alias resolution under
// ambiguity, mention extraction from speaker-attributed transcripts, and
// construction of directed, sentiment-weighted interaction graphs with
// network centrality and structural-role analysis.
//
// # Architecture
//
// The engine is a pure in-memory pipeline. Data flows leaf-first:
//
//	┌─────────────────────────────────────┐
//	│        Entity Registry              │  registry: canonical entities,
//	│   (versioned, read-only per run)    │  role tenures, alias index
//	└─────────────────────────────────────┘
//	           ↓ consulted by
//	┌─────────────────────────────────────┐
//	│        Alias Resolver               │  resolver: exact → fuzzy →
//	│  (stateless resolution cascade)     │  coreference → unresolved
//	└─────────────────────────────────────┘
//	           ↓ invoked by
//	┌─────────────────────────────────────┐
//	│       Mention Extractor             │  mention: pattern scanning,
//	│ (transcript segments → mentions)    │  deictic resolution, audit log
//	└─────────────────────────────────────┘
//	           ↓ feeds
//	┌─────────────────────────────────────┐
//	│   Graph Builder / Aggregator        │  graph: session graphs,
//	│ (centrality, roles, communities)    │  commutative cumulative merge
//	└─────────────────────────────────────┘
//
// The registry and its alias index are built once per processing run and
// shared freely across concurrent resolver calls; resolution is a pure
// function of (index snapshot, input). Mention extraction is sequential
// within a session (deictic resolution depends on speaker-turn order) but
// sessions are independent and run in parallel via the session package.
//
// This module deliberately excludes speech recognition, diarization,
// sentiment classification, rendering, and any network or CLI surface.
// Those are collaborator concerns consumed or produced at the interfaces
// defined by the mention and export packages.
package graphhansard

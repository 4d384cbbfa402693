// Package export serializes session graphs and audit artifacts for
// downstream consumers: JSON graph documents for the dashboard, CSV
// edge lists and GraphML for third-party graph tools, and the
// alias-index and unresolved-mention logs for review. All writers are
// deterministic: the same input always produces byte-identical output.
package export

import (
	"encoding/json"
	"io"

	"github.com/caribdigital/graphhansard/errors"
	"github.com/caribdigital/graphhansard/graph"
	"github.com/caribdigital/graphhansard/mention"
	"github.com/caribdigital/graphhansard/registry"
)

// GraphDocument is the JSON export envelope for a session or
// cumulative graph.
type GraphDocument struct {
	RegistryVersion string             `json:"registry_version,omitempty"`
	Graph           *graph.SessionGraph `json:"graph"`
}

// WriteGraphJSON writes the graph as an indented JSON document.
func WriteGraphJSON(w io.Writer, g *graph.SessionGraph, registryVersion string) error {
	if g == nil {
		return errors.WrapInvalid(errors.ErrEmptyInput, "Export", "WriteGraphJSON", "nil graph")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(GraphDocument{RegistryVersion: registryVersion, Graph: g}); err != nil {
		return errors.Wrap(err, "Export", "WriteGraphJSON", "encode json")
	}
	return nil
}

// UnresolvedLog is the JSON export shape of the unresolved-mention
// review log.
type UnresolvedLog struct {
	SessionID string               `json:"session_id"`
	Count     int                  `json:"count"`
	Mentions  []mention.Unresolved `json:"mentions"`
}

// WriteUnresolvedLog writes the unresolved mentions for one session as
// an indented JSON document. An empty entry list is valid output: it
// records that extraction ran clean.
func WriteUnresolvedLog(w io.Writer, sessionID string, entries []mention.Unresolved) error {
	if entries == nil {
		entries = []mention.Unresolved{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := UnresolvedLog{SessionID: sessionID, Count: len(entries), Mentions: entries}
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "Export", "WriteUnresolvedLog", "encode json")
	}
	return nil
}

// AliasIndexDocument is the JSON export shape of a derived alias index.
type AliasIndexDocument struct {
	RegistryVersion string              `json:"registry_version"`
	AliasCount      int                 `json:"alias_count"`
	Collisions      []string            `json:"collision_aliases"`
	Aliases         map[string][]string `json:"aliases"`
}

// WriteAliasIndex writes the alias index with its metadata header. Map
// keys serialize in sorted order, so rebuilding the same registry
// version yields byte-identical output.
func WriteAliasIndex(w io.Writer, ix *registry.AliasIndex) error {
	if ix == nil {
		return errors.WrapInvalid(errors.ErrEmptyInput, "Export", "WriteAliasIndex", "nil index")
	}

	aliases := ix.Export()
	collisions := ix.CollisionAliases()
	if collisions == nil {
		collisions = []string{}
	}
	doc := AliasIndexDocument{
		RegistryVersion: ix.Version(),
		AliasCount:      len(aliases),
		Collisions:      collisions,
		Aliases:         aliases,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "Export", "WriteAliasIndex", "encode json")
	}
	return nil
}

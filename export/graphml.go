package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caribdigital/graphhansard/errors"
	"github.com/caribdigital/graphhansard/graph"
)

const graphmlNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

var graphmlKeys = []graphmlKey{
	{ID: "d0", For: "node", AttrName: "display_name", AttrType: "string"},
	{ID: "d1", For: "node", AttrName: "affiliation", AttrType: "string"},
	{ID: "d2", For: "node", AttrName: "in_degree", AttrType: "int"},
	{ID: "d3", For: "node", AttrName: "out_degree", AttrType: "int"},
	{ID: "d4", For: "node", AttrName: "betweenness", AttrType: "double"},
	{ID: "d5", For: "node", AttrName: "eigenvector", AttrType: "double"},
	{ID: "d6", For: "node", AttrName: "closeness", AttrType: "double"},
	{ID: "d7", For: "node", AttrName: "structural_roles", AttrType: "string"},
	{ID: "d8", For: "node", AttrName: "community_id", AttrType: "int"},
	{ID: "e0", For: "edge", AttrName: "weight", AttrType: "int"},
	{ID: "e1", For: "edge", AttrName: "net_sentiment", AttrType: "double"},
	{ID: "e2", For: "edge", AttrName: "is_procedural", AttrType: "boolean"},
}

// WriteGraphML writes the graph in GraphML interchange format for
// third-party graph tools (Gephi, yEd, networkx).
func WriteGraphML(w io.Writer, g *graph.SessionGraph) error {
	if g == nil {
		return errors.WrapInvalid(errors.ErrEmptyInput, "Export", "WriteGraphML", "nil graph")
	}

	doc := graphmlDoc{
		Xmlns: graphmlNamespace,
		Keys:  graphmlKeys,
		Graph: graphmlGraph{
			ID:          g.SessionID,
			EdgeDefault: "directed",
		},
	}

	for _, n := range g.Nodes {
		roles := make([]string, len(n.StructuralRoles))
		for i, r := range n.StructuralRoles {
			roles[i] = r.String()
		}
		data := []graphmlData{
			{Key: "d0", Value: n.DisplayName},
			{Key: "d1", Value: n.Affiliation.String()},
			{Key: "d2", Value: strconv.Itoa(n.InDegree)},
			{Key: "d3", Value: strconv.Itoa(n.OutDegree)},
			{Key: "d4", Value: formatFloat(n.Betweenness)},
			{Key: "d5", Value: formatFloat(n.Eigenvector)},
			{Key: "d6", Value: formatFloat(n.Closeness)},
			{Key: "d7", Value: strings.Join(roles, ",")},
		}
		if n.CommunityID != nil {
			data = append(data, graphmlData{Key: "d8", Value: strconv.Itoa(*n.CommunityID)})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{ID: n.EntityID, Data: data})
	}

	for _, e := range g.Edges {
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			Source: e.SourceEntityID,
			Target: e.TargetEntityID,
			Data: []graphmlData{
				{Key: "e0", Value: strconv.Itoa(e.TotalCount)},
				{Key: "e1", Value: formatFloat(e.NetSentiment)},
				{Key: "e2", Value: strconv.FormatBool(e.Procedural)},
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "Export", "WriteGraphML", "write header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "Export", "WriteGraphML", "encode xml")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "Export", "WriteGraphML", "close encoder")
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return errors.Wrap(err, "Export", "WriteGraphML", "write trailer")
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/caribdigital/graphhansard/errors"
	"github.com/caribdigital/graphhansard/graph"
)

var edgeListHeader = []string{
	"source_entity_id",
	"target_entity_id",
	"total_count",
	"positive_count",
	"neutral_count",
	"negative_count",
	"net_sentiment",
	"is_procedural",
}

// WriteEdgeListCSV writes the graph's edges as a CSV table, one row per
// aggregated (source, target) pair, in the graph's deterministic edge
// order.
func WriteEdgeListCSV(w io.Writer, g *graph.SessionGraph) error {
	if g == nil {
		return errors.WrapInvalid(errors.ErrEmptyInput, "Export", "WriteEdgeListCSV", "nil graph")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(edgeListHeader); err != nil {
		return errors.Wrap(err, "Export", "WriteEdgeListCSV", "write header")
	}

	for _, e := range g.Edges {
		row := []string{
			e.SourceEntityID,
			e.TargetEntityID,
			strconv.Itoa(e.TotalCount),
			strconv.Itoa(e.PositiveCount),
			strconv.Itoa(e.NeutralCount),
			strconv.Itoa(e.NegativeCount),
			strconv.FormatFloat(e.NetSentiment, 'f', 4, 64),
			strconv.FormatBool(e.Procedural),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "Export", "WriteEdgeListCSV", "write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "Export", "WriteEdgeListCSV", "flush")
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jpmardones/despensa/internal/pantry"
	domain "github.com/jpmardones/despensa/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printQueueTable(items []domain.ExtractedItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tNORMALIZED\tQTY\tCATEGORY\tMERCHANT\tDATE\n")
	for i := range items {
		tw.writef("%s\t%s\t%d\t%s\t%s\t%s\n",
			items[i].OriginalName,
			items[i].NormalizedName,
			items[i].Quantity,
			items[i].Category,
			items[i].Merchant,
			items[i].Date,
		)
	}
	return tw.finish()
}

func printPantryTable(entries []domain.EnrichedEntry) error {
	now := time.Now()

	tw := newTabWriter(os.Stdout)
	tw.writef("\tNAME\tQTY\tCATEGORY\tFRESHNESS\tEXPIRES\n")
	for i := range entries {
		e := &entries[i]
		tw.writef("%s\t%s\t%d %s\t%s\t%s\t%s\n",
			e.Icon,
			e.Name,
			e.Quantity,
			e.Unit,
			e.Category,
			e.Freshness,
			pantry.FormatRelativeExpiry(e.EstimatedExpiry, now),
		)
	}
	return tw.finish()
}

func printBacklogTable(reports []domain.UnknownItemReport) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tNORMALIZED\tCOUNT\tLAST REPORTED\n")
	for i := range reports {
		tw.writef("%s\t%s\t%d\t%s\n",
			reports[i].Name,
			reports[i].NormalizedName,
			reports[i].Count,
			reports[i].LastReportedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printIngredientsTable(ings []domain.CanonicalIngredient) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("\tID\tNAME\tCATEGORY\tUNIT\tSHELF LIFE\n")
	for i := range ings {
		tw.writef("%s\t%s\t%s\t%s\t%s\t%dd\n",
			ings[i].Icon,
			ings[i].ID,
			ings[i].Names.ES,
			ings[i].Category,
			ings[i].DefaultUnit,
			ings[i].ShelfLifeDays,
		)
	}
	return tw.finish()
}

func printPreparedFoodsTable(pfs []domain.CanonicalPreparedFood) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("\tID\tNAME\tCUISINE\tSHELF LIFE\n")
	for i := range pfs {
		tw.writef("%s\t%s\t%s\t%s\t%dd\n",
			pfs[i].Icon,
			pfs[i].ID,
			pfs[i].Names.ES,
			pfs[i].Cuisine,
			pfs[i].ShelfLifeDays,
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/modelmarket-catalog/internal/catalog"
	"github.com/rshade/modelmarket-catalog/internal/pricing"
)

// fallbackMark flags prices shown in the other region's currency.
const fallbackMark = "*"

func writeTable(w io.Writer, t pricing.TableSpec) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeCards(w io.Writer, page catalog.Page[catalog.Card]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range page.Items {
		price := c.Price
		if c.HasCurrencyFallback {
			price += fallbackMark
		}
		tags := c.TaskType
		if c.ThirdParty {
			tags += ", third-party"
		}
		if c.FreeTag != "" {
			tags += ", " + c.FreeTag
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, price, c.RunCount, tags)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d/%d (%d models)\n", page.Number, page.TotalPages, page.Total)
	return err
}

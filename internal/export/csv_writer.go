package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"rugops/internal/domain"
	"rugops/internal/estimate"
)

// estimateColumns defines the header row for estimate line exports.
var estimateColumns = []string{
	"Service",
	"Description",
	"Priority",
	"Quantity",
	"Unit Price",
	"Subtotal",
}

// earningsColumns defines the header row for technician earnings exports.
var earningsColumns = []string{
	"Technician",
	"Jobs",
	"Pending Amount",
	"Paid Amount",
}

// WriteEstimateCSV writes estimate lines as CSV, one row per line plus a
// trailing total row.
func WriteEstimateCSV(w io.Writer, items []estimate.ServiceItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(estimateColumns); err != nil {
		return err
	}

	for _, it := range items {
		row := []string{
			it.Name,
			it.Description,
			string(it.Priority),
			strconv.Itoa(it.Quantity),
			formatMoney(it.UnitPrice),
			formatMoney(it.Subtotal()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	total := []string{"Total", "", "", "", "", formatMoney(estimate.Total(items))}
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteEarningsCSV writes the per-technician earnings summary as CSV.
func WriteEarningsCSV(w io.Writer, rows []domain.TechnicianEarningsRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(earningsColumns); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.TechnicianName,
			strconv.Itoa(r.JobCount),
			formatMoney(r.PendingAmount),
			formatMoney(r.PaidAmount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

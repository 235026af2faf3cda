package analyzer

import (
	"fmt"
	"strings"

	"rugops/internal/port"
)

// BuildInspectionPrompt produces the instruction text sent alongside rug
// photos. The requested output format matches what the estimate parser
// expects: a services section opened by a recognized header, one
// "Service Name: $amount" line per service, per-rug subtotals, and a
// closing total line.
func BuildInspectionPrompt(input port.AnalyzeInput) string {
	var b strings.Builder

	b.WriteString("You are a master rug cleaning and restoration specialist. ")
	b.WriteString("Inspect the attached rug photos and write a professional inspection report for the client.\n\n")

	if input.JobNumber != "" {
		fmt.Fprintf(&b, "Job number: %s\n", input.JobNumber)
	}
	if input.RugNotes != "" {
		fmt.Fprintf(&b, "Intake notes: %s\n", input.RugNotes)
	}

	b.WriteString(`
Structure the report exactly as follows:

1. A short greeting and overall condition assessment in plain prose.
2. A section headed "RUG BREAKDOWN AND SERVICES". Inside it, for each rug:
   - A header line "Rug #<n>: <type> (<size>)".
   - One line per recommended service in the form "- <Service Name>: $<amount>"
     with a dollar amount directly after the colon.
   - A "Subtotal: $<amount>" line for the rug.
3. A "TOTAL ESTIMATE: $<amount>" line.
4. A "Next Steps" paragraph and a sign-off beginning with "Sincerely".

Recommend only services justified by visible condition. Use market-rate
pricing for hand-washing, stain removal, repairs, fringe and edge work,
moth proofing, and protective treatments.
`)

	return b.String()
}

package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/testbanken/backoffice/internal/core/domain"
)

// ComposeReport renders flagged customers into the plain-text body of an
// audit notification: a preamble line followed by a fixed-column table with
// one row per flagged customer.
func ComposeReport(flagged []*domain.FlaggedCustomer) string {
	var b strings.Builder
	b.WriteString("Suspicious transactions found for customers:\n")

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Id", "Name", "Account number(s)", "Transaction number(s)"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, entry := range flagged {
		table.Append([]string{
			strconv.FormatInt(entry.CustomerID, 10),
			entry.FirstName + " " + entry.LastName,
			joinIDs(entry.AccountIDs),
			joinIDs(entry.TransactionIDs),
		})
	}

	table.Render()
	return b.String()
}

// joinIDs renders an id set as a comma-joined ascending list.
func joinIDs(ids map[int64]struct{}) string {
	sorted := make([]int64, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

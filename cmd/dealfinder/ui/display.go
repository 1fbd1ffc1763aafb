package ui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/dylangamachefl/grocery-deal-finder/internal/domain"
	"github.com/dylangamachefl/grocery-deal-finder/internal/pipeline"
)

// Error displays an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}

// Success displays a success message.
func Success(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Info displays an informational message.
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "%s %s\n", color.CyanString("ℹ"), fmt.Sprintf(format, args...))
}

// Section displays a section header.
func Section(title string) {
	bold := color.New(color.Bold)
	fmt.Fprintf(os.Stdout, "\n%s\n%s\n", bold.Sprint(title), strings.Repeat("=", len(title)))
}

// Table displays data in a formatted table.
func Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

// RenderResult prints the full pipeline outcome: matched deals, the model's
// summary, and the category breakdown of the ad.
func RenderResult(result pipeline.RunResult) {
	Section("Matched Deals")
	if len(result.Report.Matches) == 0 {
		Info("No deals in this ad match your shopping list.")
	} else {
		byID := make(map[string]domain.MasterInventoryItem, len(result.Inventory))
		for _, item := range result.Inventory {
			byID[item.ID] = item
		}

		rows := make([][]string, 0, len(result.Report.Matches))
		for _, m := range result.Report.Matches {
			item := byID[m.ID]
			deal := m.DealDescription
			if deal == "" {
				deal = item.DealText
			}
			rows = append(rows, []string{
				m.ItemName,
				item.StoreName,
				formatPrice(item),
				item.Category,
				deal,
			})
		}
		Table([]string{"Item", "Store", "Price", "Category", "Deal"}, rows)
	}

	if result.Report.Summary != "" {
		fmt.Fprintf(os.Stdout, "\n%s\n", result.Report.Summary)
	}

	Section("Ad Breakdown")
	renderCategoryCounts(result.CategoryCounts)
}

func formatPrice(item domain.MasterInventoryItem) string {
	price := item.Price
	if price == "" {
		return "-"
	}
	if !strings.HasPrefix(price, "$") {
		price = "$" + price
	}
	if item.Unit != "" {
		price += " / " + item.Unit
	}
	return price
}

func renderCategoryCounts(counts map[string]int) {
	if len(counts) == 0 {
		Info("No items were categorized.")
		return
	}

	names := make([]string, 0, len(counts))
	total := 0
	for name, n := range counts {
		names = append(names, name)
		total += n
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	rows = append(rows, []string{"Total", fmt.Sprintf("%d", total)})
	Table([]string{"Category", "Items"}, rows)
}

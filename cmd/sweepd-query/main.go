package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"sweepd/internal/exitcodes"
	"sweepd/internal/journal"
)

func main() {
	// Parse command-line flags
	dbPath := flag.String("db", "/var/lib/sweepd/removals.db", "Path to removal journal")
	recent := flag.Int("recent", 0, "Show N most recent removals")
	stats := flag.Bool("stats", false, "Show removal statistics")
	action := flag.String("action", "", "Filter by action (REMOVE, DRY_RUN, ERROR)")
	dir := flag.String("dir", "", "Filter by routine directory")
	pathPattern := flag.String("path", "", "Filter by path pattern (SQL LIKE syntax)")
	largest := flag.Int("largest", 0, "Show N largest removals")
	days := flag.Int("days", 30, "Number of days for statistics (default: 30)")
	jsonOutput := flag.Bool("json", false, "Output in JSON format")
	flag.Parse()

	// Open journal
	jr, err := journal.Open(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open journal %s: %v", *dbPath, err)
	}
	defer func() {
		if err := jr.Close(); err != nil {
			log.Printf("ERROR: Failed to close journal: %v", err)
		}
	}()

	// Handle different query modes
	switch {
	case *stats:
		showStats(jr, *days, *jsonOutput)
	case *recent > 0:
		showRecent(jr, *recent, *jsonOutput)
	case *action != "":
		showByAction(jr, *action, *jsonOutput)
	case *dir != "":
		showByDirectory(jr, *dir, *jsonOutput)
	case *pathPattern != "":
		showByPath(jr, *pathPattern, *jsonOutput)
	case *largest > 0:
		showLargest(jr, *largest, *jsonOutput)
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  sweepd-query --recent 10             # Show 10 most recent removals")
		fmt.Println("  sweepd-query --stats                 # Show removal statistics")
		fmt.Println("  sweepd-query --action ERROR          # Show failed removals")
		fmt.Println("  sweepd-query --dir /var/tmp/spool    # Show removals from one routine")
		fmt.Println("  sweepd-query --path '/var/tmp/%'     # Show removals by path pattern")
		fmt.Println("  sweepd-query --largest 10            # Show 10 largest removals")
		os.Exit(exitcodes.InvalidConfig)
	}
}

func showStats(jr *journal.Journal, days int, jsonOutput bool) {
	stats, err := jr.GetStats(days)
	if err != nil {
		log.Fatalf("ERROR: Failed to get statistics: %v", err)
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Removal Statistics (Last %d days)\n", days)
	fmt.Printf("Period: %s to %s\n\n", stats.StartDate.Format("2006-01-02"), stats.EndDate.Format("2006-01-02"))
	fmt.Printf("Total Removed:   %d\n", stats.TotalRemoved)
	fmt.Printf("Total Errors:    %d\n", stats.TotalErrors)
	fmt.Printf("Total Dry Run:   %d\n", stats.TotalDryRun)
	fmt.Printf("Space Freed:     %s\n\n", formatBytes(stats.TotalSpaceFreed))

	if len(stats.ByAction) > 0 {
		fmt.Println("By Action:")
		for action, count := range stats.ByAction {
			fmt.Printf("  %-15s %d\n", action, count)
		}
		fmt.Println()
	}

	if len(stats.ByDirectory) > 0 {
		fmt.Println("By Directory:")
		for directory, count := range stats.ByDirectory {
			fmt.Printf("  %-40s %d\n", directory, count)
		}
	}
}

func showRecent(jr *journal.Journal, limit int, jsonOutput bool) {
	records, err := jr.Recent(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get recent removals: %v", err)
	}
	output(records, jsonOutput)
}

func showByAction(jr *journal.Journal, action string, jsonOutput bool) {
	records, err := jr.ByAction(action)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by action: %v", err)
	}
	output(records, jsonOutput)
}

func showByDirectory(jr *journal.Journal, dir string, jsonOutput bool) {
	records, err := jr.ByDirectory(dir)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by directory: %v", err)
	}
	output(records, jsonOutput)
}

func showByPath(jr *journal.Journal, pathPattern string, jsonOutput bool) {
	records, err := jr.ByPath(pathPattern)
	if err != nil {
		log.Fatalf("ERROR: Failed to query by path: %v", err)
	}
	output(records, jsonOutput)
}

func showLargest(jr *journal.Journal, limit int, jsonOutput bool) {
	records, err := jr.Largest(limit)
	if err != nil {
		log.Fatalf("ERROR: Failed to get largest removals: %v", err)
	}
	output(records, jsonOutput)
}

func output(records []journal.Record, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Println(string(data))
		return
	}
	printRecords(records)
}

func printRecords(records []journal.Record) {
	if len(records) == 0 {
		fmt.Println("No records found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tACTION\tPATH\tTYPE\tSIZE\tPATTERN\tERROR")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Action,
			r.Path,
			r.ObjectType,
			formatBytes(r.Size),
			r.Pattern,
			r.ErrorMessage,
		)
	}
	w.Flush()
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

package services

import (
	"fmt"
	"strings"

	"tanah-scraper/models"
)

// PrintRunReport writes the run statistics to the terminal. The format is
// free-form diagnostics, not part of any compatibility surface.
func PrintRunReport(stats *models.RunStats) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  EXTRACTION RUN REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Items seen      : \033[1m%d\033[0m\n", stats.TotalSeen)
	fmt.Printf("  Accepted        : \033[1;32m%d\033[0m\n", stats.ValidCount)
	fmt.Printf("  Duplicates      : %d\n", stats.Duplicates)
	fmt.Println()

	fmt.Printf("\033[1;33m  Rejections by reason\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if stats.Rejected() == 0 {
		fmt.Printf("  None\n")
	} else {
		printReason("Missing link", stats.MissingLink)
		printReason("Missing surface", stats.MissingSurface)
		printReason("Surface too small", stats.SurfaceTooSmall)
		printReason("Surface too big", stats.SurfaceTooBig)
		printReason("Missing price", stats.MissingPrice)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printReason(label string, count int) {
	if count == 0 {
		return
	}
	bar := strings.Repeat("█", count)
	if count > 40 {
		bar = strings.Repeat("█", 40) + "…"
	}
	fmt.Printf("  %-18s %s (%d)\n", label, bar, count)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List board presets",
	Long:  `Shows the board size and mine count of every difficulty.`,
	Run:   runPresets,
}

func runPresets(_ *cobra.Command, _ []string) {
	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-5s  %s\n", "ID", "Board", "Mines", "Density")
	fmt.Printf("  %-8s  %-7s  %-5s  %s\n", "--", "-----", "-----", "-------")

	for _, d := range stats.All() {
		p, ok := stats.Dimensions(d)
		if !ok {
			fmt.Printf("  %-8s  %-7s  %-5s  %s\n", d, "any", "any", "-")
			continue
		}
		density := float64(p.Mines) / float64(p.Size*p.Size) * 100
		fmt.Printf("  %-8s  %-7s  %-5d  %.1f%%\n", d, fmt.Sprintf("%dx%d", p.Size, p.Size), p.Mines, density)
	}

	fmt.Println()
	fmt.Println("Run 'sweeper play <id>' to play, or 'sweeper play custom --size N --mines M'.")
}

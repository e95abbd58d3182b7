package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShadyRoll/bookserve/pkg/catalog"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	authorStyle = lipgloss.NewStyle().Faint(true)
	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
)

// printBooks renders results one per line, rank first.
func printBooks(books []catalog.Book) {
	for i, b := range books {
		fmt.Fprintf(os.Stderr, "%2d. %s %s %s\n",
			i+1,
			titleStyle.Render(b.Title),
			authorStyle.Render("by "+b.Author),
			ratingStyle.Render(fmt.Sprintf("(%.1f)", b.Rating)),
		)
	}
}

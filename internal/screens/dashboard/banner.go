package dashboard

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feprep/internal/ui/theme"
)

const bannerArt = `
 ███████╗███████╗    ██████╗ ██████╗ ███████╗██████╗
 ██╔════╝██╔════╝    ██╔══██╗██╔══██╗██╔════╝██╔══██╗
 █████╗  █████╗      ██████╔╝██████╔╝█████╗  ██████╔╝
 ██╔══╝  ██╔══╝      ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
 ██║     ███████╗    ██║     ██║  ██║███████╗██║
 ╚═╝     ╚══════╝    ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "F E   P R E P"

// renderBanner falls back to a compact title below 56 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

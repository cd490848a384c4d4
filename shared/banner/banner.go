package banner

import (
	"fmt"
	"os"
	"strings"

	"github.com/sentinelsec/sg-sentinel/shared/ansi"
	"golang.org/x/term"
)

const (
	bannerColor      = "\x1b[38;2;255;153;0m" // Amazon Orange
	bannerColorReset = "\x1b[0m"
)

var titleLines = []string{
	" ███████╗  ██████╗        ███████╗ ███████╗ ███╗   ██╗ ████████╗ ██╗ ███╗   ██╗ ███████╗ ██╗     ",
	" ██╔════╝ ██╔════╝        ██╔════╝ ██╔════╝ ████╗  ██║ ╚══██╔══╝ ██║ ████╗  ██║ ██╔════╝ ██║     ",
	" ███████╗ ██║  ███╗ █████╗███████╗ █████╗   ██╔██╗ ██║    ██║    ██║ ██╔██╗ ██║ █████╗   ██║     ",
	" ╚════██║ ██║   ██║ ╚════╝╚════██║ ██╔══╝   ██║╚██╗██║    ██║    ██║ ██║╚██╗██║ ██╔══╝   ██║     ",
	" ███████║ ╚██████╔╝       ███████║ ███████╗ ██║ ╚████║    ██║    ██║ ██║ ╚████║ ███████╗ ███████╗",
	" ╚══════╝  ╚═════╝        ╚══════╝ ╚══════╝ ╚═╝  ╚═══╝    ╚═╝    ╚═╝ ╚═╝  ╚═══╝ ╚══════╝ ╚══════╝",
}

func printCenteredLines(lines []string, width int) {
	for _, line := range lines {
		pad := 0

		if width > len(line) {
			pad = (width - len(line)) / 2
		}

		if pad > 0 {
			fmt.Print(strings.Repeat(" ", pad))
		}

		fmt.Println(line)
	}
}

// DrawBannerTitle prints the application title banner to stdout.
func DrawBannerTitle() {
	ansi.EnableANSI()

	width := 80

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Print(bannerColor)
	printCenteredLines(titleLines, width)
	fmt.Print(bannerColorReset)
}

package utils

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/jedib0t/go-pretty/v6/text"
)

func DrawBanner() {
	banner := figure.NewColorFigure("Storage Doctor", "small", "blue", true)
	banner.Print()
	fmt.Println(text.FgHiBlack.Sprint(" Azure blob & managed disk price comparison"))
	fmt.Println()
}

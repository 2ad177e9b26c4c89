package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/term"
)

const defaultCols = 64

// previewCols returns cols, or the terminal width when cols is zero.
func previewCols(cols int) int {
	if cols > 0 {
		return cols
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultCols
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultCols
	}
	return w
}

// render draws img with half-block cells, two scaled rows per line,
// cols columns wide.
func render(img image.Image, cols int) string {
	b := img.Bounds()
	if cols <= 0 || b.Empty() {
		return ""
	}
	if cols > b.Dx() {
		cols = b.Dx()
	}
	rows := max(b.Dy()*cols/b.Dx()/2, 1)

	small := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.NearestNeighbor.Scale(small, small.Bounds(), img, b, xdraw.Src, nil)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hex(small.RGBAAt(c, 2*r))).
				Background(hex(small.RGBAAt(c, 2*r+1))).
				Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}

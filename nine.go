package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
)

// Nine draws a nine-slice frame: corners keep their size, edges stretch along
// one axis and the centre along both.
type Nine struct {
	images  *ebiten.Image
	R, G, B float64
	alpha   float64
	Scale   float64

	// source cuts: outer top-left, inner top-left, inner bottom-right, outer bottom-right
	cuts [4][2]int
}

// Draw frames the rectangle x, y, width, height. Without an image it falls back
// to a flat fill.
func (n *Nine) Draw(screen *ebiten.Image, x, y, width, height int) {
	if n == nil || n.images == nil {
		ebitenutil.DrawRect(screen, float64(x), float64(y), float64(width), float64(height),
			color.RGBA{40, 44, 52, 230})
		return
	}
	left := n.Scale * float64(n.cuts[1][0]-n.cuts[0][0])
	top := n.Scale * float64(n.cuts[1][1]-n.cuts[0][1])
	right := n.Scale * float64(n.cuts[3][0]-n.cuts[2][0])
	bottom := n.Scale * float64(n.cuts[3][1]-n.cuts[2][1])

	dstX := [4]float64{float64(x), float64(x) + left, float64(x+width) - right, float64(x + width)}
	dstY := [4]float64{float64(y), float64(y) + top, float64(y+height) - bottom, float64(y + height)}

	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			src := image.Rect(n.cuts[col][0], n.cuts[row][1], n.cuts[col+1][0], n.cuts[row+1][1])
			if src.Dx() == 0 || src.Dy() == 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale((dstX[col+1]-dstX[col])/float64(src.Dx()), (dstY[row+1]-dstY[row])/float64(src.Dy()))
			op.GeoM.Translate(dstX[col], dstY[row])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.images.SubImage(src).(*ebiten.Image), op)
		}
	}
}

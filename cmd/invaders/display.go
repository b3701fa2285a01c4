package main

import (
	"image"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// Display owns the PixelGL window and the RGBA surface the video-RAM decoder
// draws into. The cabinet's CRT runs in portrait orientation, rotated 90°
// counter-clockwise from the 256x224 framebuffer the hardware actually
// scans out, so the window is sized 224 wide by 256 tall and every pixel is
// placed through rotate().
type Display struct {
	rgba *image.RGBA

	window *pixelgl.Window
	matrix pixel.Matrix

	debugAtlas    *text.Atlas
	debugRegText  *text.Text
	debugInstText *text.Text

	isDebug bool
}

const (
	fbWidth  = 256 // native framebuffer width, x in [0,255]
	fbHeight = 224 // native framebuffer height, y in [0,223]

	screenW float64 = fbHeight // post-rotation window width
	screenH float64 = fbWidth  // post-rotation window height
	scale   float64 = 3

	debugPanelW float64 = 360
)

func NewDisplay(isDebug bool) *Display {
	rect := image.Rect(0, 0, int(screenW), int(screenH))
	rgba := image.NewRGBA(rect)

	winW := screenW * scale
	if isDebug {
		winW += debugPanelW
	}

	config := pixelgl.WindowConfig{
		Title:  "Space Invaders",
		Bounds: pixel.R(0, 0, winW, screenH*scale),
		VSync:  true,
	}
	window, err := pixelgl.NewWindow(config)
	if err != nil {
		panic(err)
	}

	pic := pixel.PictureDataFromImage(rgba)
	matrix := pixel.IM.Moved(pic.Bounds().Center().Scaled(scale))
	matrix = matrix.Scaled(pic.Bounds().Center().Scaled(scale), scale)

	debugAtlas := text.NewAtlas(basicfont.Face7x13, text.ASCII)
	debugRegText := text.New(pixel.V(screenW*scale+8, screenH*scale-40), debugAtlas)
	debugInstText := text.New(pixel.V(screenW*scale+8, screenH*scale-200), debugAtlas)

	return &Display{
		rgba:          rgba,
		window:        window,
		matrix:        matrix,
		debugAtlas:    debugAtlas,
		debugRegText:  debugRegText,
		debugInstText: debugInstText,
		isDebug:       isDebug,
	}
}

func (d *Display) Closed() bool { return d.window.Closed() }

// DrawFramebuffer decodes the 1-bit-per-pixel video RAM region (spec: pixel
// (x,y) is bit (x mod 8) of fb[0x20*y+(x>>3)]) and rotates it 90°
// counter-clockwise into the window's RGBA surface.
func (d *Display) DrawFramebuffer(fb []byte) {
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	off := color.RGBA{A: 255}

	for y := 0; y < fbHeight; y++ {
		for x := 0; x < fbWidth; x++ {
			byteIdx := 0x20*y + (x >> 3)
			bit := uint(x % 8)
			c := off
			if fb[byteIdx]&(1<<bit) != 0 {
				c = on
			}

			// 90 CCW: native (x,y) lands at screen (y, fbWidth-1-x).
			d.rgba.SetRGBA(y, fbWidth-1-x, c)
		}
	}
}

func (d *Display) WriteRegDebugString(s string) {
	d.debugRegText.Clear()
	d.debugRegText.WriteString(s)
}

func (d *Display) WriteInstDebugString(s string) {
	d.debugInstText.Clear()
	d.debugInstText.WriteString(s)
}

func (d *Display) Update() {
	d.window.Clear(colornames.Black)

	pic := pixel.PictureDataFromImage(d.rgba)
	sprite := pixel.NewSprite(pic, pic.Bounds())
	sprite.Draw(d.window, d.matrix)

	if d.isDebug {
		d.debugRegText.Draw(d.window, pixel.IM)
		d.debugInstText.Draw(d.window, pixel.IM)
	}

	d.window.Update()
}

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/sirupsen/logrus"
	"github.com/yangrq1018/holdem-bot/telegram/texas"
)

// size of a card drawn when its picture is missing
const (
	cardWidth  = 100
	cardHeight = 145
)

var (
	red   = color.RGBA{R: 0xc8, G: 0x10, B: 0x2e, A: 0xff}
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Renderer lays the pictures of a hand's cards side by side into one PNG.
// Card pictures are looked up as <pics>/<suit>_<rank>.png.
type Renderer struct {
	picsDir string
	outDir  string

	mu       sync.Mutex
	rendered []string
	logger   logrus.FieldLogger
}

func New(picsDir, outDir string) *Renderer {
	return &Renderer{
		picsDir: picsDir,
		outDir:  outDir,
		logger:  logrus.WithField("module", "render"),
	}
}

func (r *Renderer) picPath(c texas.Card) string {
	return filepath.Join(r.picsDir, fmt.Sprintf("%s_%d.png", c.Suit, c.Rank))
}

func (r *Renderer) cardImage(c texas.Card) image.Image {
	img, err := draw2dimg.LoadFromPngFile(r.picPath(c))
	if err == nil {
		return img
	}
	if !errors.Is(err, os.ErrNotExist) {
		r.logger.WithError(err).Warnf("load picture of %s", c)
	}
	return placeholder(c)
}

// placeholder draws a plain card: rank many pips in the suit's color
func placeholder(c texas.Card) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	gc := draw2dimg.NewGraphicContext(canvas)
	gc.SetFillColor(white)
	gc.SetStrokeColor(black)
	gc.SetLineWidth(2)
	gc.BeginPath()
	draw2dkit.RoundedRectangle(gc, 2, 2, cardWidth-2, cardHeight-2, 12, 12)
	gc.FillStroke()

	pip := black
	if c.Suit == texas.Heart || c.Suit == texas.Diamond {
		pip = red
	}
	gc.SetFillColor(pip)
	for i := 0; i < int(c.Rank); i++ {
		col, row := i%3, i/3
		gc.BeginPath()
		draw2dkit.Circle(gc, float64(25+col*25), float64(25+row*22), 8)
		gc.Fill()
	}
	return canvas
}

// Render writes the hand to a new PNG in the output directory and
// returns its path.
func (r *Renderer) Render(h texas.Hand) (string, error) {
	if len(h) == 0 {
		return "", fmt.Errorf("nothing to render")
	}
	images := make([]image.Image, len(h))
	width, height := 0, 0
	for i, c := range h {
		images[i] = r.cardImage(c)
		b := images[i].Bounds()
		width += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Over)
		x += b.Dx()
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(r.outDir, fmt.Sprintf("hand-%s.png", uuid.New().String()))
	if err := draw2dimg.SaveToPngFile(path, canvas); err != nil {
		return "", err
	}
	r.mu.Lock()
	r.rendered = append(r.rendered, path)
	r.mu.Unlock()
	return path, nil
}

// Cleanup deletes every image rendered so far
func (r *Renderer) Cleanup() error {
	r.mu.Lock()
	paths := r.rendered
	r.rendered = nil
	r.mu.Unlock()
	var first error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) && first == nil {
			first = err
		}
	}
	return first
}

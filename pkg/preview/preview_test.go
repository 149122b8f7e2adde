package preview

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/ripple/pkg/input"
)

func TestImageSizeAndOpaque(t *testing.T) {
	img, err := Image(Scene{Width: 32, Height: 24, Time: 2, Pointer: input.PointerState{X: 0.5, Y: 0.5}})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Fatalf("bounds = %v, want 32x24", b)
	}

	for _, pt := range [][2]int{{0, 0}, {16, 12}, {31, 23}} {
		c := color.NRGBAModel.Convert(img.At(pt[0], pt[1])).(color.NRGBA)
		if c.A != 255 {
			t.Errorf("pixel %v alpha = %d, want 255", pt, c.A)
		}
	}
}

func TestImageCenterBrighterThanCorner(t *testing.T) {
	img, err := Image(Scene{Width: 64, Height: 64, Pointer: input.PointerState{X: 0.5, Y: 0.5}})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	center := color.NRGBAModel.Convert(img.At(32, 32)).(color.NRGBA)
	corner := color.NRGBAModel.Convert(img.At(0, 63)).(color.NRGBA)
	if corner.B >= center.B {
		t.Errorf("corner blue %d not below center blue %d", corner.B, center.B)
	}
}

func TestInvalidSize(t *testing.T) {
	if _, err := Render(Scene{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.png")
	scene := Scene{
		Width:   16,
		Height:  16,
		Time:    1,
		Ripples: []input.ClickRipple{{X: 0.5, Y: 0.5, T: 0.5}},
	}
	if err := SavePNG(scene, path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("snapshot file is empty")
	}
}

package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/WallSplit/internal/model"
)

func TestNewProjectorFitsWithMargin(t *testing.T) {
	// 1000x500 viewport, 2000x1000 image: limiting axis scale is 0.5,
	// reduced by the 10% margin to 0.45.
	p := NewProjector(1000, 500, 2000, 1000)
	assert.InDelta(t, 0.45, p.Scale, 1e-9)

	w, h := p.ScaledSize(2000, 1000)
	assert.Equal(t, 900, w)
	assert.Equal(t, 450, h)
}

func TestNewProjectorCentersImage(t *testing.T) {
	p := NewProjector(1000, 500, 2000, 1000)
	// Scaled image is 900x450, so 50px and 25px of slack split evenly.
	assert.Equal(t, 50, p.OffsetX)
	assert.Equal(t, 25, p.OffsetY)
}

func TestNewProjectorUsesLimitingAxis(t *testing.T) {
	// Tall viewport: width is the limiting axis.
	p := NewProjector(400, 2000, 800, 600)
	assert.InDelta(t, 0.45, p.Scale, 1e-9)
}

func TestNewProjectorDegenerateInput(t *testing.T) {
	p := NewProjector(0, 500, 2000, 1000)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, 0, p.OffsetX)
}

func TestProjectAppliesScaleAndOffset(t *testing.T) {
	p := Projector{Scale: 0.5, OffsetX: 30, OffsetY: 40}
	sc := &model.ScreenConfig{X: 100, Y: 200, Width: 301, Height: 401}

	x1, y1, x2, y2 := p.Project(sc)
	assert.Equal(t, 80, x1)  // floor(100*0.5)+30
	assert.Equal(t, 140, y1) // floor(200*0.5)+40
	assert.Equal(t, 230, x2) // floor(401*0.5)+30 = 200+30
	assert.Equal(t, 340, y2) // floor(601*0.5)+40 = 300+40
}

func TestProjectFloorsNegativeCoordinates(t *testing.T) {
	p := Projector{Scale: 0.4}
	sc := &model.ScreenConfig{X: -3, Y: -3, Width: 10, Height: 10}

	x1, y1, _, _ := p.Project(sc)
	// floor(-1.2) is -2, not -1: projection uses floor, not truncation.
	assert.Equal(t, -2, x1)
	assert.Equal(t, -2, y1)
}

func TestProjectIsStateless(t *testing.T) {
	p := NewProjector(1200, 800, 3840, 2160)
	sc := &model.ScreenConfig{X: 10, Y: 20, Width: 1920, Height: 1080}

	ax1, ay1, ax2, ay2 := p.Project(sc)
	bx1, by1, bx2, by2 := p.Project(sc)
	assert.Equal(t, []int{ax1, ay1, ax2, ay2}, []int{bx1, by1, bx2, by2})
}

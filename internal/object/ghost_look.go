package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/ping/internal/draw"
)

// Blob is one circle of a ghost body, in units of the ghost size.
type Blob struct {
	OX, OY float64 // Offset from the ghost center
	R      float64
}

// EyeType is the eye shape.
type EyeType int

const (
	EyeRound EyeType = iota
	EyeOval
	EyeSlit
	EyeHollow
	eyeTypeCount
)

// PupilStyle is how pupils are drawn.
type PupilStyle int

const (
	PupilDot PupilStyle = iota
	PupilLarge
	PupilNone
	PupilCross
	pupilStyleCount
)

// BrowStyle is the eyebrow shape.
type BrowStyle int

const (
	BrowNone BrowStyle = iota
	BrowAngry
	BrowSad
	BrowFlat
	browStyleCount
)

// MouthStyle is the mouth shape.
type MouthStyle int

const (
	MouthO MouthStyle = iota
	MouthGrin
	MouthWavy
	MouthFlat
	MouthNone
	mouthStyleCount
)

// GhostLook is the procedurally generated appearance of one ghost. It is
// generated once and never changes.
type GhostLook struct {
	Main       Blob
	Satellites []Blob

	Eye        EyeType
	EyeSlant   float64 // Radians, mirrored between the eyes
	LeftScale  float64 // Size asymmetry
	RightScale float64
	Pupil      PupilStyle
	Brow       BrowStyle
	Mouth      MouthStyle
}

// NewGhostLook rolls a random appearance from rng.
func NewGhostLook(rng *rand.Rand) GhostLook {
	look := GhostLook{
		Main:       Blob{R: 0.42 + rng.Float64()*0.06},
		Eye:        EyeType(rng.Intn(int(eyeTypeCount))),
		EyeSlant:   (rng.Float64()*2 - 1) * 0.35,
		LeftScale:  0.8 + rng.Float64()*0.4,
		RightScale: 0.8 + rng.Float64()*0.4,
		Pupil:      PupilStyle(rng.Intn(int(pupilStyleCount))),
		Brow:       BrowStyle(rng.Intn(int(browStyleCount))),
		Mouth:      MouthStyle(rng.Intn(int(mouthStyleCount))),
	}
	n := 1 + rng.Intn(3)
	look.Satellites = make([]Blob, n)
	for i := range look.Satellites {
		angle := math.Pi/4 + rng.Float64()*math.Pi/2 // Lower half, the "tail"
		dist := 0.25 + rng.Float64()*0.15
		look.Satellites[i] = Blob{
			OX: math.Cos(angle) * dist * (float64(i%2)*2 - 1),
			OY: math.Sin(angle) * dist,
			R:  0.15 + rng.Float64()*0.12,
		}
	}
	return look
}

// Draw renders the ghost centered at (cx, cy) with the given logical size.
func (l GhostLook) Draw(ctx DrawContext, cx, cy, size float64, body draw.Color) {
	fillCircle(ctx, cx+l.Main.OX*size, cy+l.Main.OY*size, l.Main.R*size, body)
	for _, s := range l.Satellites {
		fillCircle(ctx, cx+s.OX*size, cy+s.OY*size, s.R*size, body)
	}

	ink := ctx.Palette.Get(draw.ColorBlack).Alpha(body.A)
	eyeY := cy - size*0.08
	for i, scale := range [2]float64{l.LeftScale, l.RightScale} {
		side := float64(i*2 - 1)
		ex := cx + side*size*0.15
		r := size * 0.08 * scale
		l.drawEye(ctx, ex, eyeY, r, side, ink, body)
		l.drawBrow(ctx, ex, eyeY-r*1.8, r, side, ink)
	}
	l.drawMouth(ctx, cx, cy+size*0.15, size*0.12, ink)
}

func (l GhostLook) drawEye(ctx DrawContext, ex, ey, r, side float64, ink, body draw.Color) {
	switch l.Eye {
	case EyeRound:
		fillCircle(ctx, ex, ey, r, ink)
	case EyeOval:
		fillCircle(ctx, ex, ey-r*0.4, r*0.8, ink)
		fillCircle(ctx, ex, ey+r*0.4, r*0.8, ink)
	case EyeSlit:
		dx, dy := math.Cos(l.EyeSlant*side)*r, math.Sin(l.EyeSlant*side)*r
		line(ctx, ex-dx, ey-dy, ex+dx, ey+dy, ink)
		return
	case EyeHollow:
		strokeCircle(ctx, ex, ey, r, ink)
	}

	pupil := body.Lighten(0.5)
	switch l.Pupil {
	case PupilDot:
		fillCircle(ctx, ex, ey, r*0.3, pupil)
	case PupilLarge:
		fillCircle(ctx, ex, ey, r*0.6, pupil)
	case PupilCross:
		line(ctx, ex-r*0.5, ey, ex+r*0.5, ey, pupil)
		line(ctx, ex, ey-r*0.5, ex, ey+r*0.5, pupil)
	}
}

func (l GhostLook) drawBrow(ctx DrawContext, ex, by, r, side float64, ink draw.Color) {
	var tilt float64
	switch l.Brow {
	case BrowNone:
		return
	case BrowAngry:
		tilt = r * 0.6
	case BrowSad:
		tilt = -r * 0.6
	}
	// Inner end (toward the nose) moves by tilt.
	line(ctx, ex-side*r, by+tilt, ex+side*r, by, ink)
}

func (l GhostLook) drawMouth(ctx DrawContext, mx, my, w float64, ink draw.Color) {
	switch l.Mouth {
	case MouthO:
		strokeCircle(ctx, mx, my, w*0.45, ink)
	case MouthGrin:
		for i := -2; i < 2; i++ {
			x0 := mx + float64(i)*w/2
			x1 := x0 + w/2
			line(ctx, x0, my+math.Abs(float64(i))*w*0.1, x1, my+math.Abs(float64(i+1))*w*0.1, ink)
		}
	case MouthWavy:
		for i := 0; i < 4; i++ {
			x0 := mx - w + float64(i)*w/2
			dy := w * 0.2
			if i%2 == 0 {
				dy = -dy
			}
			line(ctx, x0, my, x0+w/2, my+dy, ink)
		}
	case MouthFlat:
		line(ctx, mx-w*0.6, my, mx+w*0.6, my, ink)
	}
}

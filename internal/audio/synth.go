package audio

import "math"

// Effect names. They match the names entities ask for.
const (
	EffectBounce  = "bounce"
	EffectPaddle  = "paddle"
	EffectBumper  = "bumper"
	EffectPortal  = "portal"
	EffectSpout   = "spout"
	EffectPowerUp = "powerup"
	EffectScore   = "score"
	EffectGhost   = "ghost"
	EffectSpin    = "spin"
	EffectMeow    = "meow"
)

// Effects renders every effect to float32 stereo PCM.
func Effects() map[string][]byte {
	return map[string][]byte{
		EffectBounce:  genBlip(0.05, 440, 440),
		EffectPaddle:  genBlip(0.06, 660, 620),
		EffectBumper:  genBumper(),
		EffectPortal:  genPortal(),
		EffectSpout:   genSpout(),
		EffectPowerUp: genPowerUp(),
		EffectScore:   genScore(),
		EffectGhost:   genGhost(),
		EffectSpin:    genSpin(),
		EffectMeow:    genMeow(),
	}
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*frameBytes + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func frames(seconds float64) int { return int(seconds * SampleRate) }

func makeBuf(n int) []byte { return make([]byte, n*frameBytes) }

// genBlip is a short square-ish tone sliding from f0 to f1.
func genBlip(seconds, f0, f1 float64) []byte {
	n := frames(seconds)
	buf := makeBuf(n)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		phase += (f0 + (f1-f0)*p) / SampleRate
		s := math.Tanh(4*math.Sin(2*math.Pi*phase)) * 0.35
		putStereoF32(buf, i, s*adsr(p, 0.02, 0.3, 0.5, 0.3))
	}
	return buf
}

func genBumper() []byte {
	n := frames(0.18)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := math.Exp(-p * 6)
		putStereoF32(buf, i, softSat(fm(t, 880-300*p, 1.5, 4*env)*env*0.5))
	}
	return buf
}

func genPortal() []byte {
	n := frames(0.35)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 300 + 900*p*p
		env := adsr(p, 0.1, 0.2, 0.7, 0.3)
		putStereoF32(buf, i, softSat(fm(t, freq, 0.5, 2)*env*0.4))
	}
	return buf
}

func genSpout() []byte {
	n := frames(0.5)
	buf := makeBuf(n)
	seed := uint64(2024)
	lp := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		lp = lp*0.8 + lcg(&seed)*0.2
		putStereoF32(buf, i, softSat(lp*adsr(p, 0.05, 0.2, 0.6, 0.4)*0.9))
	}
	return buf
}

func genPowerUp() []byte {
	n := frames(0.3)
	buf := makeBuf(n)
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		note := notes[min(int(p*float64(len(notes))), len(notes)-1)]
		putStereoF32(buf, i, softSat(fm(t, note, 2, 1.5)*adsr(p, 0.02, 0.2, 0.7, 0.2)*0.4))
	}
	return buf
}

func genScore() []byte {
	n := frames(0.6)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 392.0
		if p > 0.5 {
			freq = 587.33
		}
		putStereoF32(buf, i, softSat(math.Sin(2*math.Pi*freq*t)*adsr(p, 0.02, 0.1, 0.8, 0.2)*0.45))
	}
	return buf
}

func genGhost() []byte {
	n := frames(0.8)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		vibrato := 12 * math.Sin(2*math.Pi*6*t)
		freq := 220 + 80*math.Sin(math.Pi*p) + vibrato
		putStereoF32(buf, i, softSat(math.Sin(2*math.Pi*freq*t)*adsr(p, 0.2, 0.2, 0.7, 0.3)*0.35))
	}
	return buf
}

func genSpin() []byte {
	n := frames(0.4)
	buf := makeBuf(n)
	seed := uint64(77)
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		// Clicks at an accelerating rate, like a wheel ticking past pockets.
		rate := 20 + 40*p
		tick := math.Mod(float64(i)/SampleRate*rate, 1)
		s := 0.0
		if tick < 0.08 {
			s = lcg(&seed) * (1 - tick/0.08)
		}
		putStereoF32(buf, i, softSat(s*0.5))
	}
	return buf
}

func genMeow() []byte {
	n := frames(0.45)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 500 + 400*math.Sin(math.Pi*p)
		s := fm(t, freq, 2.01, 1.2*(1-p)) * adsr(p, 0.1, 0.3, 0.6, 0.3)
		putStereoF32(buf, i, softSat(s*0.4))
	}
	return buf
}

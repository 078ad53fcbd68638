package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestEffectsRendered(t *testing.T) {
	effects := Effects()
	for _, name := range []string{
		EffectBounce, EffectPaddle, EffectBumper, EffectPortal, EffectSpout,
		EffectPowerUp, EffectScore, EffectGhost, EffectSpin, EffectMeow,
	} {
		data, ok := effects[name]
		if !ok {
			t.Errorf("%s: not rendered", name)
			continue
		}
		if len(data) == 0 || len(data)%frameBytes != 0 {
			t.Errorf("%s: %d bytes is not whole stereo float32 frames", name, len(data))
			continue
		}
		for i := 0; i < len(data); i += 4 {
			v := math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))
			if v < -1 || v > 1 || math.IsNaN(float64(v)) {
				t.Fatalf("%s: sample %d = %v out of range", name, i/4, v)
			}
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.PlayEffect(EffectBounce)
	r.PlayEffect(EffectScore)
	r.PlayEffect(EffectBounce)
	if r.Count(EffectBounce) != 2 || r.Count(EffectScore) != 1 || r.Count(EffectMeow) != 0 {
		t.Errorf("played = %v", r.Played)
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3}}
	buf := make([]byte, 2)
	if n, err := r.Read(buf); n != 2 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}
	if n, err := r.Read(buf); n != 1 || err != nil {
		t.Fatalf("second read = %d, %v", n, err)
	}
	if _, err := r.Read(buf); err == nil {
		t.Fatal("expected EOF")
	}
}

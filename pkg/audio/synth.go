package audio

import (
	"encoding/binary"
	"math"

	"github.com/wakemind/wakemind/pkg/models"
)

// Format holds PCM format information for a playable buffer.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Synthesized profiles all render at this format; custom uploads bring
// their own.
const (
	synthSampleRate = 44100
	synthChannels   = 1
)

// Render produces a loopable PCM buffer for a built-in sound profile.
// Unknown types fall back to the classic profile.
func Render(kind models.SoundType) (*Format, []byte) {
	format := &Format{SampleRate: synthSampleRate, Channels: synthChannels, BitDepth: 16}

	var samples []float64
	switch kind {
	case models.SoundGentle:
		samples = renderGentle()
	case models.SoundSiren:
		samples = renderSiren()
	default:
		samples = renderClassic()
	}

	return format, toPCM16(samples)
}

// renderClassic produces a 1-second bar with the classic digital double
// beep: two 880 Hz square-wave pulses back to back, then silence.
func renderClassic() []float64 {
	samples := make([]float64, synthSampleRate) // 1 s loop
	addSquareBeep(samples, 0, 0.15, 880, 0.3)
	addSquareBeep(samples, 0.15, 0.15, 880, 0.3)
	return samples
}

// addSquareBeep writes a square pulse with a short fade-out so the beep
// does not click at the cut.
func addSquareBeep(samples []float64, start, duration, freq, gain float64) {
	begin := int(start * synthSampleRate)
	length := int(duration * synthSampleRate)
	fade := length / 3

	for i := 0; i < length && begin+i < len(samples); i++ {
		t := float64(i) / synthSampleRate
		v := gain
		if math.Mod(t*freq, 1) >= 0.5 {
			v = -gain
		}
		if i > length-fade {
			v *= float64(length-i) / float64(fade)
		}
		samples[begin+i] += v
	}
}

// gentleChimeFreqs spreads chime pitches across the 440-660 Hz band the
// original wind-chime effect randomized over.
var gentleChimeFreqs = []float64{440, 587, 495, 660}

// renderGentle produces a 4-second bar of soft sine chimes: a chime every
// 2 seconds with an echoing second note offset by half a second.
func renderGentle() []float64 {
	samples := make([]float64, 4*synthSampleRate)
	offsets := []float64{0, 0.5, 2.0, 2.5}
	for i, start := range offsets {
		addChime(samples, start, gentleChimeFreqs[i], 0.4)
	}
	return samples
}

// addChime writes a sine tone with a 0.1 s linear attack and a 2 s
// exponential decay down to near silence.
func addChime(samples []float64, start, freq, peak float64) {
	begin := int(start * synthSampleRate)
	length := 2 * synthSampleRate
	attack := synthSampleRate / 10
	decayRatio := 0.01 / peak

	for i := 0; i < length && begin+i < len(samples); i++ {
		t := float64(i) / synthSampleRate
		env := peak
		if i < attack {
			env *= float64(i) / float64(attack)
		} else {
			env *= math.Pow(decayRatio, (t-0.1)/1.9)
		}
		samples[begin+i] += env * math.Sin(2*math.Pi*freq*t)
	}
}

// renderSiren produces a 1-second sawtooth sweep: a 500 Hz carrier
// frequency-modulated by a 2 Hz sine at +/-200 Hz depth. The modulator
// completes whole cycles per bar, so the loop point is seamless.
func renderSiren() []float64 {
	samples := make([]float64, synthSampleRate)
	phase := 0.0
	for i := range samples {
		t := float64(i) / synthSampleRate
		freq := 500 + 200*math.Sin(2*math.Pi*2*t)
		phase += freq / synthSampleRate
		samples[i] = 0.3 * (2*math.Mod(phase, 1) - 1)
	}
	return samples
}

// toPCM16 converts float samples in [-1, 1] to little-endian signed 16-bit
// PCM, clipping anything out of range.
func toPCM16(samples []float64) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

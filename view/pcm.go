package view

import (
	"encoding/binary"
	"math"
)

// Tone renders a decaying sine as 16 bit little endian stereo PCM, the format
// ebiten/audio players read.
func Tone(freq, seconds, decay float64, sampleRate int) []byte {
	n := int(seconds * float64(sampleRate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		v := math.Sin(2*math.Pi*freq*t) * math.Exp(-decay*t)
		s := uint16(int16(v * 0.8 * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}

// Slide is a low rumble long enough to cover one square of travel.
func Slide(seconds float64, sampleRate int) []byte {
	n := int(seconds * float64(sampleRate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Min(1, t*20) * math.Min(1, (seconds-t)*20)
		v := (math.Sin(2*math.Pi*90*t) + 0.4*math.Sin(2*math.Pi*183*t)) / 1.4 * env
		s := uint16(int16(v * 0.5 * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}

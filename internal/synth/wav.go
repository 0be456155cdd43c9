package synth

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV container constants for 16-bit mono PCM.
const (
	wavHeaderSize    = 44
	wavFmtChunkSize  = 16
	wavAudioFmtPCM   = 1
	wavChannels      = 1
	wavBitsPerSample = 16
)

// encodeWAV serializes a normalized [-1, 1] signal as a 16-bit mono PCM
// RIFF/WAVE byte stream. The layout is the fixed 44-byte canonical header
// followed by little-endian samples.
func encodeWAV(signal []float64, sampleRate int) []byte {
	dataLen := len(signal) * 2
	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataLen))

	byteRate := sampleRate * wavChannels * wavBitsPerSample / 8
	blockAlign := wavChannels * wavBitsPerSample / 8

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(wavHeaderSize-8+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(wavFmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(wavAudioFmtPCM))
	binary.Write(buf, binary.LittleEndian, uint16(wavChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(wavBitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))

	for _, v := range signal {
		binary.Write(buf, binary.LittleEndian, pcm16(v))
	}
	return buf.Bytes()
}

// pcm16 quantizes a [-1, 1] sample to int16, clamping anything outside the
// representable range.
func pcm16(v float64) int16 {
	scaled := v * math.MaxInt16
	switch {
	case scaled > math.MaxInt16:
		return math.MaxInt16
	case scaled < math.MinInt16:
		return math.MinInt16
	}
	return int16(math.Round(scaled))
}

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/soundscape/utils"
)

// encodeChunk is the number of samples converted per encoder write.
const encodeChunk = 8192

// Encode writes interleaved float samples as a 16-bit PCM WAV file.
// The header is patched on completion, hence the io.WriteSeeker.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels < 1 || len(samples)%channels != 0 {
		return ErrPartialFrame
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, 0, min(len(samples), encodeChunk)),
	}

	// Always write once so an empty render still gets a header.
	for i := 0; i == 0 || i < len(samples); i += encodeChunk {
		chunk := samples[i:min(i+encodeChunk, len(samples))]
		buf.Data = buf.Data[:len(chunk)]
		for j, s := range chunk {
			buf.Data[j] = int(utils.Float32ToInt16(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("encode wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// WriteStereo16 encodes an interleaved stereo render.
func WriteStereo16(w io.WriteSeeker, sampleRate int, samples []float32) error {
	return Encode(w, sampleRate, 2, samples)
}

// WritePCM16 streams 16-bit PCM with a precomputed header, for writers that
// cannot seek such as pipes.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || len(samples)%channels != 0 {
		return ErrPartialFrame
	}

	blockAlign := 2 * channels
	dataSize := uint32(2 * len(samples))

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	buf := make([]byte, 2*min(len(samples), encodeChunk))
	for i := 0; i < len(samples); i += encodeChunk {
		chunk := samples[i:min(i+encodeChunk, len(samples))]
		out := buf[:2*len(chunk)]
		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[2*j:], uint16(s))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

// FloatToPCM16 converts a float render for WritePCM16.
func FloatToPCM16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = utils.Float32ToInt16(s)
	}
	return out
}

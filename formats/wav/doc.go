// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV recordings and encodes renders, on top of
// github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits and yields float32
// samples in [-1, 1]. Encode and WriteStereo16 write 16-bit PCM through the
// go-audio encoder and need an io.WriteSeeker; WritePCM16 streams to any
// io.Writer with a header computed up front.
package wav

// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/soundscape/audio"
	"github.com/ik5/soundscape/formats/internal/pcm"
)

type Decoder struct{}

// Decode reads uncompressed AIFF. Readers that cannot seek are buffered in
// memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, ErrNotAiffFile
	}

	src, err := pcm.NewSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth), false)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}
	return src, nil
}

// SPDX-License-Identifier: EPL-2.0

// Package noise generates fixed-length, loopable noise buffers.
//
// Three colors are supported:
//   - White: independent uniform samples in [-1, 1]
//   - Pink: white noise through Paul Kellet's refined seven-state filter
//   - Brown: white noise through a leaky integrator
//
// Buffers are mono and meant to be played in a loop; the loop seam is not
// smoothed.
//
//	buf, err := noise.Generate(noise.Pink, 3, 44100)
//	if err != nil {
//	    return err
//	}
//	player := audio.NewBufferPlayer(ctx, buf.Samples)
//
// Every sample is guaranteed to be inside [-1, 1]. The pink and brown output
// gains are tuning constants chosen by ear, so the rare excursion past full
// scale is hard clipped.
package noise

// SPDX-License-Identifier: EPL-2.0

// Package soundscape plays procedural ambient noise behind a focus timer.
//
// The work is split across subpackages:
//   - noise generates loopable white, pink and brown noise buffers
//   - audio is the signal graph runtime: context clock, automatable
//     parameters, filters, gains, panners and scheduled sources
//   - scape builds the rain, wind and waves graphs
//   - transition crossfades between graphs and releases retired ones
//   - coupling maps timer state to the master gain
//   - engine ties everything together behind a small set of setters
//   - texture replaces procedural layers with decoded recordings
//
// # Quick Start
//
// An engine needs an output device; without one its clock only moves when
// the caller renders:
//
//	e, _ := engine.New(engine.DefaultConfig())
//	defer e.Close()
//
//	e.SetMode(scape.Waves)
//	e.ObserveTimer(coupling.Signal{Running: true})
//	e.SetEnabled(true)
//
//	buf := make([]float32, 2*44100)
//	e.Context().Render(buf) // one second of stereo audio
//
// Render wraps these steps for offline use, and formats/wav writes the result:
//
//	samples, _ := soundscape.Render(cfg, scape.Rain, coupling.Signal{Running: true}, time.Minute)
//	f, _ := os.Create("rain.wav")
//	wav.WriteStereo16(f, cfg.SampleRate, samples)
package soundscape

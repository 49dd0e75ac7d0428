// SPDX-License-Identifier: EPL-2.0

// Package engine is the public face of the soundscape.
//
// An Engine keeps the user preferences (mode, enabled, volume) and the timer
// signal, and reconciles the audio graph with them: every setter stores the
// new value, reduces the old and new state to an effect and schedules the
// matching ramps on the audio clock. Setters never block on audio and never
// return errors; failures are logged and the engine degrades to silence.
//
// The audio context, the master gain and the output device are created on
// first use and torn down once by Close.
package engine

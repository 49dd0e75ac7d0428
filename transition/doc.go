// SPDX-License-Identifier: EPL-2.0

// Package transition moves the soundscape between silence and the modes.
//
// A Controller owns at most one current graph plus the graphs still fading
// out. Every fade is a linear ramp anchored at the gain's present value, so a
// request arriving mid-fade bends the curve instead of restarting it. Faded
// graphs are released from an audio clock callback once their ramp has
// finished.
package transition

// SPDX-License-Identifier: EPL-2.0

// Package scape builds the processing graph of each soundscape mode.
//
// A graph is a tagged variant: RainGraph, WindGraph and WavesGraph each carry
// exactly the nodes their topology needs, behind the common Graph interface.
//
//	rain:  pink noise -> lowpass -> out
//	wind:  pink noise -> bandpass -> out, gust LFO -> bandpass frequency
//	waves: brown noise -> lowpass -> body gain  \
//	                                             panner -> tone lowpass -> out
//	       pink noise  -> highpass -> spray gain /
//	       swell LFO -> body gain, spray gain, tone frequency
//	       drift LFO -> pan
//
// Build starts every source immediately with the output gain at zero; the
// caller owns the graph and must eventually hand it to Release.
package scape

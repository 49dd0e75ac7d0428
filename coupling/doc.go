// SPDX-License-Identifier: EPL-2.0

// Package coupling ties the master gain to the focus timer.
//
// The master multiplier is a pure function of the timer signal, the enabled
// flag and the user volume. Reduce compares two states and reports what the
// engine has to do about the change; a Coupler turns a state into a master
// gain ramp that always starts from the value the gain has right now.
package coupling

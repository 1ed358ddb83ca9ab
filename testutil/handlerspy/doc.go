// Package handlerspy provides a recording observed.Handler for tests.
//
// RecordingHandler records every hook call together with the size of the guarded
// collection at the time of the call, which makes hook ordering relative to the
// container mutation observable. Vetoes and hook failures are configurable per hook.
package handlerspy

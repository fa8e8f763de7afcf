// Package speech is the voice-capture boundary of jot.
//
// A Recognizer starts Sessions that report the cumulative transcript recognized so
// far: every OnResult call carries the full text, superseding the previous one.
// Callers only depend on the capability check, Start, Session.Stop and the two
// callbacks; how audio is captured or transcribed stays inside each engine.
package speech

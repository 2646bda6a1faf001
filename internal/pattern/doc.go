// Package pattern provides the error-signature library used to classify
// log chunks.
//
// A Library is an immutable set of compiled rules plus shared
// false-positive guards. Rules carry severity, category, and confidence
// metadata; guards recognize phrases where an error-looking token
// appears in a non-error sense ("no error detected", "error count: 0")
// and suppress classification for the whole chunk.
//
// Rules come from one of three sources, in order of preference:
//
//  1. A keywords file (Load) using "#" header lines to set the current
//     category and severity for the keywords that follow
//  2. The built-in default rule set (Default) covering well-known
//     failure signatures
//  3. A minimal fallback set (Fallback) when a configured file cannot
//     be read
//
// Loading never fails: unreadable or malformed sources degrade to the
// fallback set with a logged warning.
//
// Well-known keywords (segfault, kernel panic, out of memory, ...) are
// compiled into widened matchers that require corroborating context
// tokens near the keyword, which is the primary false-positive
// reduction mechanism. Unrecognized keywords become case-insensitive
// word-boundary literals.
package pattern

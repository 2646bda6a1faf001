package pattern

import "regexp"

// guardSources are phrases where an error-looking token appears in a
// non-error sense. A guard match on a chunk suppresses every detection
// for that chunk.
var guardSources = []string{
	`without any error`,
	`no error`,
	`error.*0`,
	`error.*success`,
	`error.*ok`,
	`error.*complete`,
	`error.*finished`,
	`error.*done`,
	`error.*passed`,
	`error.*working`,
	`error.*normal`,
	`error.*good`,
	`error.*fine`,
	`error.*healthy`,
	`error.*stable`,
	`error.*running`,
	`error.*active`,
	`error.*online`,
	`error.*ready`,
	`error.*available`,
	`error.*free`,
	`error.*clean`,
	`error.*clear`,
	`error.*resolved`,
	`error.*fixed`,
	`error.*recovered`,
}

// DefaultGuards compiles the shared false-positive guard set.
func DefaultGuards() []*regexp.Regexp {
	guards := make([]*regexp.Regexp, 0, len(guardSources))
	for _, src := range guardSources {
		guards = append(guards, regexp.MustCompile(`(?is)`+src))
	}
	return guards
}

// Package argv locates options inside a raw argument vector.
//
// Unlike a flag-parsing library, this package never consumes, validates, or
// reorders arguments: it answers positional questions about an immutable
// token list. A logical option usually has several spellings (a short and a
// long form); resolution functions take the full spelling set so that "the
// last mention wins" holds across spellings, not just within one.
//
// All functions treat the argument vector as read-only and never fail:
// a missing option is an ordinary outcome, reported through an ok bool or an
// empty slice.
package argv

// Occurrences returns every index i such that args[i] equals spelling,
// in ascending order. The result is empty when the spelling never occurs.
func Occurrences(spelling string, args []string) []int {
	var idx []int
	for i, a := range args {
		if a == spelling {
			idx = append(idx, i)
		}
	}
	return idx
}

// Present reports whether any of the spellings occurs anywhere in args.
// This is a pure membership check; positions and following values are
// irrelevant, so "-w" as the final token still counts.
func Present(spellings []string, args []string) bool {
	for _, s := range spellings {
		if len(Occurrences(s, args)) > 0 {
			return true
		}
	}
	return false
}

// ResolveSingle returns the value of a single-valued option: the token
// immediately following the highest-indexed occurrence of any spelling.
// The last mention wins even when earlier mentions used a different
// spelling of the same option.
//
// The second return is false when no spelling occurs, or when the winning
// occurrence is the final token and no value can follow it.
func ResolveSingle(spellings []string, args []string) (string, bool) {
	last := -1
	for _, s := range spellings {
		for _, i := range Occurrences(s, args) {
			if i > last {
				last = i
			}
		}
	}
	if last < 0 || last+1 >= len(args) {
		return "", false
	}
	return args[last+1], true
}

// ResolveAll returns the value of every occurrence of every spelling, in
// argument-vector order. Occurrences without a following token are dropped
// rather than represented as empty strings. The result is nil when no
// occurrence carries a value.
func ResolveAll(spellings []string, args []string) []string {
	match := make(map[string]bool, len(spellings))
	for _, s := range spellings {
		match[s] = true
	}

	var values []string
	for i, a := range args {
		if match[a] && i+1 < len(args) {
			values = append(values, args[i+1])
		}
	}
	return values
}

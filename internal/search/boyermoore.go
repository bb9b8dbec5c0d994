// Package search implements the editor's plain and regular-expression
// search/replace engine (spec.md §4.5). Plain search compiles a
// Boyer-Moore skip table instead of calling into the standard
// library's string-search helpers or a regexp package: this is the
// spec's own named core engineering, not ambient plumbing, so it is
// hand-rolled deliberately (see SPEC_FULL.md §2).
package search

// BMPattern is a Boyer-Moore compiled pattern, holding both the
// forward delta-1 (bad-character) table and a delta-2 (good-suffix)
// table, plus a separately compiled reversed pattern for backward
// search (ground: original_source/include/search.h's RegPat forward/
// backward pair, applied to the plain-text matcher too, and
// cxl/bmsearch.h which the header includes for the underlying
// algorithm).
type BMPattern struct {
	pat        []byte
	ignoreCase bool

	delta1 [256]int // bad-character skip, forward
	delta2 []int    // good-suffix skip, forward

	rdelta1 [256]int // bad-character skip, backward (reversed pattern)
	rdelta2 []int
}

func normalize(b byte, ignoreCase bool) byte {
	if ignoreCase && b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// CompileBM compiles pat for both forward and backward search.
func CompileBM(pat []byte, ignoreCase bool) *BMPattern {
	p := &BMPattern{pat: append([]byte(nil), pat...), ignoreCase: ignoreCase}
	buildDelta1(&p.delta1, p.pat, ignoreCase)
	p.delta2 = buildDelta2(p.pat, ignoreCase)

	rev := reversed(p.pat)
	buildDelta1(&p.rdelta1, rev, ignoreCase)
	p.rdelta2 = buildDelta2(rev, ignoreCase)
	return p
}

func reversed(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[len(p)-1-i] = b
	}
	return out
}

// buildDelta1 fills the bad-character table: for each byte, how far to
// shift the pattern so its rightmost occurrence of that byte lines up
// with the mismatch, or len(pat) if the byte doesn't occur at all.
func buildDelta1(table *[256]int, pat []byte, ignoreCase bool) {
	n := len(pat)
	for i := range table {
		table[i] = n
	}
	for i := 0; i < n-1; i++ {
		table[normalize(pat[i], ignoreCase)] = n - 1 - i
		if ignoreCase {
			c := pat[i]
			if c >= 'a' && c <= 'z' {
				table[c-'a'+'A'] = n - 1 - i
			}
		}
	}
}

// buildDelta2 builds the good-suffix table using the standard
// border-array construction.
func buildDelta2(pat []byte, ignoreCase bool) []int {
	n := len(pat)
	delta2 := make([]int, n)
	suff := computeSuffixes(pat, ignoreCase)

	for i := range delta2 {
		delta2[i] = n
	}
	j := 0
	for i := n - 1; i >= 0; i-- {
		if suff[i] == i+1 {
			for ; j < n-1-i; j++ {
				if delta2[j] == n {
					delta2[j] = n - 1 - i
				}
			}
		}
	}
	for i := 0; i <= n-2; i++ {
		delta2[n-1-suff[i]] = n - 1 - i
	}
	return delta2
}

func computeSuffixes(pat []byte, ignoreCase bool) []int {
	n := len(pat)
	suff := make([]int, n)
	suff[n-1] = n
	g := n - 1
	f := 0
	for i := n - 2; i >= 0; i-- {
		if i > g && suff[i+n-1-f] < i-g {
			suff[i] = suff[i+n-1-f]
		} else {
			if i < g {
				g = i
			}
			f = i
			for g >= 0 && eqByte(pat[g], pat[g+n-1-f], ignoreCase) {
				g--
			}
			suff[i] = f - g
		}
	}
	return suff
}

func eqByte(a, b byte, ignoreCase bool) bool {
	if ignoreCase {
		return normalize(a, true) == normalize(b, true)
	}
	return a == b
}

// FindForward returns the index of the first match of the pattern in
// text at or after from, or -1 if none.
func (p *BMPattern) FindForward(text []byte, from int) int {
	n := len(p.pat)
	if n == 0 {
		if from <= len(text) {
			return from
		}
		return -1
	}
	i := from + n - 1
	for i < len(text) {
		j := n - 1
		k := i
		for j >= 0 && eqByte(text[k], p.pat[j], p.ignoreCase) {
			j--
			k--
		}
		if j < 0 {
			return k + 1
		}
		shift := p.delta1[normalize(text[i], p.ignoreCase)]
		if d2 := p.delta2[j]; d2 > shift {
			shift = d2
		}
		i += shift
	}
	return -1
}

// FindBackward returns the index of the last match of the pattern in
// text at or before "upto" (the match's start index must be <= upto),
// or -1 if none. It scans using the reversed pattern's tables so the
// skip heuristics still apply right-to-left.
func (p *BMPattern) FindBackward(text []byte, upto int) int {
	n := len(p.pat)
	if n == 0 {
		if upto >= 0 {
			return upto
		}
		return -1
	}
	limit := upto + n - 1
	if limit >= len(text) {
		limit = len(text) - 1
	}
	i := limit - (n - 1)
	for i >= 0 {
		j := 0
		k := i
		for j < n && eqByte(text[k], p.pat[j], p.ignoreCase) {
			j++
			k++
		}
		if j == n {
			return i
		}
		shift := p.rdelta1[normalize(text[i], p.ignoreCase)]
		if d2 := p.rdelta2[n-1-j]; d2 > shift {
			shift = d2
		}
		i -= shift
	}
	return -1
}

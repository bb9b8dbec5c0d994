package buffer

// Narrow restricts the buffer's visible line list to the lines covered
// by r, stashing the lines before and after it on hiddenHead/hiddenTail
// so Widen can restore them later (spec.md §4.1 "narrow/widen" edge
// case: narrowing an already-narrowed buffer is an error the caller
// must check via Narrowed before calling).
func (b *Buffer) Narrow(r Region) {
	if b.Flags&FlNarrowed != 0 {
		return
	}
	start := r.Dot.Line
	end := start
	for i := 1; i < r.LineCount; i++ {
		end = end.Next()
	}

	// detach [start, end] from the list, keeping the rest as side lists.
	first := b.first
	last := b.LastLine()

	if start == first {
		b.hiddenHead = nil
	} else {
		for l := first; l != start; l = l.Next() {
			b.hiddenHead = append(b.hiddenHead, l)
		}
	}
	if end == last {
		b.hiddenTail = nil
	} else {
		for l := end.Next(); l != nil; l = l.Next() {
			b.hiddenTail = append(b.hiddenTail, l)
		}
	}

	start.prev = end
	end.next = nil
	b.first = start

	visible := 0
	bytes := 0
	for l := start; l != nil; l = l.Next() {
		visible++
		bytes += l.Len()
	}
	b.nLine = visible
	b.nByte = bytes
	b.Flags |= FlNarrowed
	b.notify(WFHard)
}

// Widen reattaches any lines stashed by Narrow, restoring the full
// buffer view.
func (b *Buffer) Widen() {
	if b.Flags&FlNarrowed == 0 {
		return
	}
	visStart := b.first
	visEnd := b.LastLine()

	first := visStart
	if len(b.hiddenHead) > 0 {
		first = b.hiddenHead[0]
		for i := 0; i < len(b.hiddenHead)-1; i++ {
			b.hiddenHead[i].next = b.hiddenHead[i+1]
			b.hiddenHead[i+1].prev = b.hiddenHead[i]
		}
		b.hiddenHead[len(b.hiddenHead)-1].next = visStart
		visStart.prev = b.hiddenHead[len(b.hiddenHead)-1]
	}

	last := visEnd
	if len(b.hiddenTail) > 0 {
		visEnd.next = b.hiddenTail[0]
		b.hiddenTail[0].prev = visEnd
		for i := 0; i < len(b.hiddenTail)-1; i++ {
			b.hiddenTail[i].next = b.hiddenTail[i+1]
			b.hiddenTail[i+1].prev = b.hiddenTail[i]
		}
		last = b.hiddenTail[len(b.hiddenTail)-1]
	}

	last.next = nil
	first.prev = last
	b.first = first

	nLine, nByte := 0, 0
	for l := first; l != nil; l = l.Next() {
		nLine++
		nByte += l.Len()
	}
	b.nLine = nLine
	b.nByte = nByte
	b.hiddenHead = nil
	b.hiddenTail = nil
	b.Flags &^= FlNarrowed
	b.notify(WFHard)
}

// Narrowed reports whether the buffer is currently narrowed.
func (b *Buffer) Narrowed() bool { return b.Flags&FlNarrowed != 0 }

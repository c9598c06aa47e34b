package machine

// RFrame is a return-stack entry: "when pc reaches From, jump to To and
// pop this frame" (spec.md §4.5/GLOSSARY).
type RFrame struct {
	To, From uint32
}

// pushRStack implements spec.md §4.5's TCO rule: if the current top frame's
// From equals the new frame's To, the two are coalesced into one frame
// instead of growing the stack, since returning through the old frame would
// immediately fall through into the new one. Without this, continuation-
// passing-style tail calls would grow the return stack without bound.
func pushRStack(stack []RFrame, to, from uint32) []RFrame {
	if n := len(stack); n > 0 && stack[n-1].From == to {
		stack[n-1].From = from
		return stack
	}
	return append(stack, RFrame{To: to, From: from})
}

package shmap

import (
	"bytes"
	"fmt"
)

// Patch describes one write of an action's payload.
type Patch struct {
	Offsets ResolvedOffsets
	Action  ActionKind
	Offset  int
	Old     []byte
	New     []byte
}

// Changed reports whether applying the patch alters the buffer.
func (p Patch) Changed() bool {
	return !bytes.Equal(p.Old, p.New)
}

func (p Patch) String() string {
	return fmt.Sprintf("%s: %d bytes at 0x%X (% x -> % x)", p.Action, len(p.New), p.Offset, p.Old, p.New)
}

// Plan resolves the write for action without touching buf.
func (t RuleTable) Plan(buf []byte, action ActionKind) (Patch, error) {
	offsets, err := Resolve(buf)
	if err != nil {
		return Patch{}, err
	}

	rule, err := t.Rule(action)
	if err != nil {
		return Patch{}, err
	}

	offset := offsets.FinalOffsetBase + rule.Delta
	if offset < 0 || offset+len(rule.Payload) > len(buf) {
		return Patch{}, &RangeError{Offset: offset, Length: len(rule.Payload), Size: len(buf)}
	}

	p := Patch{
		Offsets: offsets,
		Action:  action,
		Offset:  offset,
		Old:     make([]byte, len(rule.Payload)),
		New:     make([]byte, len(rule.Payload)),
	}
	copy(p.Old, buf[offset:])
	copy(p.New, rule.Payload)
	return p, nil
}

// Apply returns a copy of buf with the action's payload written, and the
// offset it was written to. buf itself is left untouched.
func (t RuleTable) Apply(buf []byte, action ActionKind) ([]byte, int, error) {
	p, err := t.Plan(buf, action)
	if err != nil {
		return nil, 0, err
	}

	out := make([]byte, len(buf))
	copy(out, buf)
	copy(out[p.Offset:], p.New)
	return out, p.Offset, nil
}

// Apply patches buf using the built-in rules.
func Apply(buf []byte, action ActionKind) ([]byte, int, error) {
	return DefaultRules().Apply(buf, action)
}

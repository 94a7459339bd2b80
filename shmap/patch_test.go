package shmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApply(t *testing.T) {
	tests := []struct {
		action  ActionKind
		offset  int
		payload []byte
	}{
		{ActionUnlock, 88, []byte{0x00, 0x00}},
		{ActionMakeInvasion, 85, []byte{0x00, 0x00}},
		{ActionMakeSiege, 85, []byte{0x01, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			in := testMap(128, 16, 5)
			orig := append([]byte(nil), in...)

			out, offset, err := Apply(in, tt.action)
			if err != nil {
				t.Fatalf("Apply() returned error: %v", err)
			}
			if offset != tt.offset {
				t.Errorf("Apply() offset = %d, want %d", offset, tt.offset)
			}
			if diff := cmp.Diff(tt.payload, out[offset:offset+2]); diff != "" {
				t.Errorf("written bytes mismatch (-want +got):\n%s", diff)
			}
			if len(out) != len(in) {
				t.Errorf("output is %d bytes, want %d", len(out), len(in))
			}
			for i := range out {
				if i >= offset && i < offset+2 {
					continue
				}
				if out[i] != in[i] {
					t.Errorf("byte %d changed from %02x to %02x", i, in[i], out[i])
				}
			}
			if !bytes.Equal(in, orig) {
				t.Error("Apply() modified its input buffer")
			}
		})
	}
}

func TestApply_Deterministic(t *testing.T) {
	in := testMap(200, 40, 17)
	for _, a := range Actions {
		out1, off1, err1 := Apply(in, a)
		out2, off2, err2 := Apply(in, a)
		if err1 != nil || err2 != nil {
			t.Fatalf("Apply(%s) returned errors: %v, %v", a, err1, err2)
		}
		if off1 != off2 || !bytes.Equal(out1, out2) {
			t.Errorf("Apply(%s) is not deterministic", a)
		}
	}
}

func TestApply_IdempotentForZeroPayloads(t *testing.T) {
	for _, a := range []ActionKind{ActionUnlock, ActionMakeInvasion} {
		once, _, err := Apply(testMap(128, 16, 5), a)
		if err != nil {
			t.Fatalf("Apply(%s) returned error: %v", a, err)
		}
		twice, _, err := Apply(once, a)
		if err != nil {
			t.Fatalf("second Apply(%s) returned error: %v", a, err)
		}
		if !bytes.Equal(once, twice) {
			t.Errorf("Apply(%s) is not idempotent", a)
		}
	}
}

func TestApply_OutOfRange(t *testing.T) {
	// Siege writes at 85, so 86 bytes leaves room for only one payload byte.
	in := testMap(86, 16, 5)

	out, _, err := Apply(in, ActionMakeSiege)
	if !errors.Is(err, ErrorOffsetOutOfRange) {
		t.Fatalf("Apply() error = %v, want ErrorOffsetOutOfRange", err)
	}
	if out != nil {
		t.Error("Apply() produced an output buffer on failure")
	}

	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("Apply() error %T is not a *RangeError", err)
	}
	if diff := cmp.Diff(RangeError{Offset: 85, Length: 2, Size: 86}, *re); diff != "" {
		t.Errorf("RangeError mismatch (-want +got):\n%s", diff)
	}
	if KindOf(err) != KindOffsetOutOfRange {
		t.Errorf("KindOf() = %s, want %s", KindOf(err), KindOffsetOutOfRange)
	}
}

func TestApply_NegativeOffset(t *testing.T) {
	rules := DefaultRules()
	rules[ActionUnlock] = ActionRule{Delta: -1000, Payload: []byte{0, 0}}

	if _, _, err := rules.Apply(testMap(128, 16, 5), ActionUnlock); !errors.Is(err, ErrorOffsetOutOfRange) {
		t.Errorf("Apply() error = %v, want ErrorOffsetOutOfRange", err)
	}
}

func TestApply_PropagatesResolveError(t *testing.T) {
	_, _, err := Apply([]byte{1, 2, 3}, ActionUnlock)
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Reason != "header truncated" {
		t.Errorf("Apply() error = %v, want header truncated", err)
	}
}

func TestApply_UnknownAction(t *testing.T) {
	_, _, err := Apply(testMap(128, 16, 5), ActionKind(42))
	if !errors.Is(err, ErrorUnknownAction) {
		t.Errorf("Apply() error = %v, want ErrorUnknownAction", err)
	}
	if KindOf(err) != KindOther {
		t.Errorf("KindOf() = %s, want %s", KindOf(err), KindOther)
	}
}

func TestPlan(t *testing.T) {
	in := testMap(128, 16, 5)
	p, err := DefaultRules().Plan(in, ActionMakeSiege)
	if err != nil {
		t.Fatalf("Plan() returned error: %v", err)
	}

	want := Patch{
		Offsets: ResolvedOffsets{Val1: 16, OffsetB: 24, Val2: 5, FinalOffsetBase: 89},
		Action:  ActionMakeSiege,
		Offset:  85,
		Old:     []byte{in[85], in[86]},
		New:     []byte{0x01, 0x00},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
	if !p.Changed() {
		t.Error("Changed() = false, want true")
	}
}

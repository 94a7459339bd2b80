package shmap

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// PayloadSize is the width of the map type/lock flag.
const PayloadSize = 2

type ActionKind int

const (
	ActionUnlock ActionKind = iota
	ActionMakeInvasion
	ActionMakeSiege
)

// Actions lists every supported action in menu order.
var Actions = []ActionKind{ActionUnlock, ActionMakeInvasion, ActionMakeSiege}

func (a ActionKind) String() string {
	switch a {
	case ActionUnlock:
		return "unlock"
	case ActionMakeInvasion:
		return "invasion"
	case ActionMakeSiege:
		return "siege"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Caption is the human readable name shown in menus and messages.
func (a ActionKind) Caption() string {
	switch a {
	case ActionUnlock:
		return "Unlock Map"
	case ActionMakeInvasion:
		return "Make Invasion Map"
	case ActionMakeSiege:
		return "Make Siege Map"
	}
	return a.String()
}

func (a ActionKind) valid() bool {
	return a >= ActionUnlock && a <= ActionMakeSiege
}

// ParseAction accepts the short names, the make-* aliases and the captions.
func ParseAction(s string) (ActionKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer(" ", "-", "_", "-").Replace(name)
	name = strings.TrimSuffix(name, "-map")
	name = strings.TrimPrefix(name, "make-")

	for _, a := range Actions {
		if name == a.String() {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrorUnknownAction, s)
}

type ActionRule struct {
	Delta   int
	Payload []byte
}

func (r ActionRule) String() string {
	return fmt.Sprintf("delta %+d, payload % x", r.Delta, r.Payload)
}

type RuleTable map[ActionKind]ActionRule

// DefaultRules returns a fresh copy of the built-in table. Unlock lands one
// byte before the base, the mode flag four bytes before it.
func DefaultRules() RuleTable {
	return RuleTable{
		ActionUnlock:       {Delta: -1, Payload: []byte{0x00, 0x00}},
		ActionMakeInvasion: {Delta: -4, Payload: []byte{0x00, 0x00}},
		ActionMakeSiege:    {Delta: -4, Payload: []byte{0x01, 0x00}},
	}
}

func (t RuleTable) Rule(a ActionKind) (ActionRule, error) {
	r, ok := t[a]
	if !ok {
		return ActionRule{}, fmt.Errorf("%w: no rule for %s", ErrorUnknownAction, a)
	}
	return r, nil
}

// Validate checks that every action has a rule with a flag sized payload.
func (t RuleTable) Validate() error {
	for _, a := range Actions {
		r, ok := t[a]
		if !ok {
			return fmt.Errorf("%w: missing rule for %s", ErrorInvalidRule, a)
		}
		if len(r.Payload) != PayloadSize {
			return fmt.Errorf("%w: %s payload is %d bytes, need %d", ErrorInvalidRule, a, len(r.Payload), PayloadSize)
		}
	}
	for a := range t {
		if !a.valid() {
			return fmt.Errorf("%w: %s", ErrorUnknownAction, a)
		}
	}
	return nil
}

// Sorted returns the actions of the table in menu order.
func (t RuleTable) Sorted() []ActionKind {
	var keys []ActionKind
	for a := range t {
		keys = append(keys, a)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ParsePayload decodes a hex string such as "01 00" or "0x0100".
func ParsePayload(s string) ([]byte, error) {
	clean := strings.NewReplacer(" ", "", ":", "", "-", "").Replace(strings.TrimSpace(s))
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")

	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: payload %q: %v", ErrorInvalidRule, s, err)
	}
	if len(b) != PayloadSize {
		return nil, fmt.Errorf("%w: payload %q is %d bytes, need %d", ErrorInvalidRule, s, len(b), PayloadSize)
	}
	return b, nil
}

package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/tnebes/sme/shmap"
)

type InspectCmd struct {
	Target Target `embed:""`
	Action string `arg:"" optional:"" name:"action" help:"Only show this action."`

	Window int `optional:"" type:"int" default:"64" help:"Number of bytes to dump around the flag."`
}

func (i *InspectCmd) Run(c *Context) error {
	actions := shmap.Actions
	if i.Action != "" {
		a, err := shmap.ParseAction(i.Action)
		if err != nil {
			return err
		}
		actions = []shmap.ActionKind{a}
	}
	return c.inspect(i.Target.File, actions, i.Window)
}

func (c *Context) inspect(path string, actions []shmap.ActionKind, window int) error {
	var patches []shmap.Patch
	var buf []byte
	for _, a := range actions {
		var p shmap.Patch
		var err error
		if buf == nil {
			p, buf, err = c.editor.Inspect(path, a)
		} else {
			p, err = c.editor.Rules().Plan(buf, a)
		}
		if err != nil {
			return fmt.Errorf("inspecting %s for '%s': %w", filepath.Base(path), a.Caption(), err)
		}
		patches = append(patches, p)
	}

	offsets := patches[0].Offsets
	fmt.Fprintf(c.out, "File:    %s (%d bytes)\n", path, len(buf))
	fmt.Fprintf(c.out, "val1:    0x%04X (at 0x04)\n", offsets.Val1)
	fmt.Fprintf(c.out, "val2:    0x%04X (at 0x%X)\n", offsets.Val2, offsets.OffsetB)
	fmt.Fprintf(c.out, "base:    0x%X\n\n", offsets.FinalOffsetBase)

	tw := tabwriter.NewWriter(c.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tOFFSET\tCURRENT\tPAYLOAD\tSTATE")
	mark := make([]bool, len(buf))
	for _, p := range patches {
		state := "differs"
		if !p.Changed() {
			state = "set"
		}
		fmt.Fprintf(tw, "%s\t0x%X\t% x\t% x\t%s\n", p.Action, p.Offset, p.Old, p.New, state)
		for j := range p.New {
			mark[p.Offset+j] = true
		}
	}
	tw.Flush()

	start, data := dumpWindow(buf, offsets.FinalOffsetBase, window)
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, hexdump(start, data, mark[start:start+len(data)]))
	return nil
}

type RulesCmd struct {
}

func (r *RulesCmd) Run(c *Context) error {
	rules := c.editor.Rules()

	tw := tabwriter.NewWriter(c.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tCAPTION\tDELTA\tPAYLOAD")
	for _, a := range rules.Sorted() {
		rule := rules[a]
		fmt.Fprintf(tw, "%s\t%s\t%+d\t% x\n", a, a.Caption(), rule.Delta, rule.Payload)
	}
	return tw.Flush()
}

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tnebes/sme/shmap"
)

type Target struct {
	File string `arg:"" name:"file" help:"Map file to modify."`
}

type UnlockCmd struct {
	Target Target `embed:""`
}

func (u *UnlockCmd) Run(c *Context) error {
	return c.patch(u.Target.File, shmap.ActionUnlock)
}

type InvasionCmd struct {
	Target Target `embed:""`
}

func (i *InvasionCmd) Run(c *Context) error {
	return c.patch(i.Target.File, shmap.ActionMakeInvasion)
}

type SiegeCmd struct {
	Target Target `embed:""`
}

func (s *SiegeCmd) Run(c *Context) error {
	return c.patch(s.Target.File, shmap.ActionMakeSiege)
}

type ApplyCmd struct {
	Action shmap.ActionKind `arg:"" name:"action" type:"action" help:"unlock, invasion or siege."`
	Target Target           `embed:""`
}

func (a *ApplyCmd) Run(c *Context) error {
	return c.patch(a.Target.File, a.Action)
}

var errNotMapFile = errors.New("Not a .map file, use --force to patch it anyway")

func (c *Context) checkMapFile(path string) error {
	if c.force || strings.EqualFold(filepath.Ext(path), ".map") {
		return nil
	}
	return fmt.Errorf("%s: %w", path, errNotMapFile)
}

func (c *Context) patch(path string, action shmap.ActionKind) error {
	if err := c.checkMapFile(path); err != nil {
		return err
	}

	p, err := c.editor.PatchFile(path, action)
	if err != nil {
		return fmt.Errorf("'%s' on %s: %w", action.Caption(), filepath.Base(path), err)
	}

	verb := "Wrote"
	if c.dryRun {
		verb = "Would write"
	}
	fmt.Fprintf(c.out, "%s %d bytes to offset 0x%X (% x -> % x).\n", verb, len(p.New), p.Offset, p.Old, p.New)
	if !p.Changed() {
		fmt.Fprintf(c.out, "%s already had the '%s' value.\n", filepath.Base(path), action.Caption())
	}
	return nil
}

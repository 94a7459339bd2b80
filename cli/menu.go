package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/inancgumus/screen"
	"github.com/tnebes/sme/shmap"
)

type MenuCmd struct {
	File string `arg:"" optional:"" name:"file" help:"Map file to start with."`
}

func (m *MenuCmd) Run(c *Context) error {
	return newMenu(c, os.Stdin, true).run(m.File)
}

type menu struct {
	c     *Context
	in    *bufio.Scanner
	clear bool

	file   string
	status string
	failed bool
}

func newMenu(c *Context, in io.Reader, clear bool) *menu {
	return &menu{
		c:     c,
		in:    bufio.NewScanner(in),
		clear: clear,

		status: "Select a map file to begin.",
	}
}

func (m *menu) run(file string) error {
	if file != "" {
		m.selectFile(file)
	}

	for {
		m.draw()

		line, ok := m.readLine("> ")
		if !ok {
			return m.in.Err()
		}

		switch strings.ToLower(line) {
		case "1":
			if name, ok := m.readLine("Map file: "); ok {
				m.selectFile(name)
			}
		case "2", "3", "4":
			m.runAction(shmap.Actions[int(line[0]-'2')])
		case "5":
			m.inspect()
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			m.setError(fmt.Sprintf("Unknown choice %q.", line))
		}
	}
}

func (m *menu) draw() {
	out := m.c.out
	if m.clear {
		screen.Clear()
		screen.MoveTopLeft()
	}

	fmt.Fprintln(out, "Stronghold Map Editor")
	fmt.Fprintln(out)
	if m.file != "" {
		fmt.Fprintf(out, "File: %s\n", filepath.Base(m.file))
	}
	if m.failed {
		color.New(color.FgRed).Fprintln(out, m.status)
	} else {
		color.New(color.FgGreen).Fprintln(out, m.status)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  1) Open map file")
	for i, a := range shmap.Actions {
		fmt.Fprintf(out, "  %d) %s\n", i+2, a.Caption())
	}
	fmt.Fprintln(out, "  5) Inspect")
	fmt.Fprintln(out, "  q) Quit")
}

func (m *menu) readLine(prompt string) (string, bool) {
	fmt.Fprint(m.c.out, prompt)
	if !m.in.Scan() {
		fmt.Fprintln(m.c.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *menu) setError(s string) {
	m.status, m.failed = s, true
}

func (m *menu) selectFile(name string) {
	name = strings.Trim(name, `"'`)
	if err := m.c.checkMapFile(name); err != nil {
		m.setError(err.Error())
		return
	}
	if info, err := os.Stat(name); err != nil || info.IsDir() {
		m.setError(fmt.Sprintf("Cannot open %s.", name))
		return
	}

	m.file = name
	m.setStatus(fmt.Sprintf("Selected: %s", filepath.Base(name)))
	m.c.log.Infof("User selected map file: %s", name)
}

func (m *menu) haveFile() bool {
	if m.file == "" {
		m.c.log.Warn("Menu action chosen but no file was selected.")
		m.setError("Please select a valid map file first.")
		return false
	}
	return true
}

func (m *menu) runAction(action shmap.ActionKind) {
	if !m.haveFile() {
		return
	}

	p, err := m.c.editor.PatchFile(m.file, action)
	if err != nil {
		m.c.log.WithField("kind", shmap.KindOf(err)).Errorf("An error occurred while trying to modify map file for action '%s': %v", action.Caption(), err)
		m.setError(fmt.Sprintf("Error: %v", err))
		return
	}
	m.setStatus(fmt.Sprintf("Success! '%s' applied to %s (wrote %d bytes to offset 0x%X).",
		action.Caption(), filepath.Base(m.file), len(p.New), p.Offset))
}

func (m *menu) inspect() {
	if !m.haveFile() {
		return
	}

	if m.clear {
		screen.Clear()
		screen.MoveTopLeft()
	}
	if err := m.c.inspect(m.file, shmap.Actions, 64); err != nil {
		m.setError(fmt.Sprintf("Error: %v", err))
		return
	}
	m.readLine("\nPress enter to continue.")
	m.setStatus(fmt.Sprintf("Inspected %s.", filepath.Base(m.file)))
}

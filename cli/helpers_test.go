package main

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tnebes/sme/shmap"
)

// newTestContext returns a Context writing to the returned buffer.
func newTestContext(t *testing.T, config shmap.Config) (*Context, *bytes.Buffer) {
	t.Helper()

	log := logrus.New()
	log.Out = ioutil.Discard

	config.LogFunc = editorLogFunc(log)
	editor, err := shmap.New(config)
	if err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	return &Context{
		editor: editor,
		log:    log,
		out:    out,
		dryRun: config.DryRun,
	}, out
}

// writeMap writes a 128 byte map whose flag base resolves to 89.
func writeMap(t *testing.T, name string) (string, []byte) {
	t.Helper()

	buf := make([]byte, 128)
	binary.LittleEndian.PutUint16(buf[4:], 16)
	binary.LittleEndian.PutUint16(buf[24:], 5)
	buf[85], buf[86] = 0x55, 0x66

	path := filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}
	return path, buf
}

func readMap(t *testing.T, path string) []byte {
	t.Helper()
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

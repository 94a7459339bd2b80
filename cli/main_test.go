package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/tnebes/sme/shmap"
)

func TestFinish(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	err := &shmap.RangeError{Offset: 85, Length: 2, Size: 86}
	if code := finish(log, err); code != 1 {
		t.Errorf("finish() = %d, want 1", code)
	}

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("finish() logged %d entries, want 1", len(entries))
	}
	if entries[0].Level != logrus.ErrorLevel {
		t.Errorf("entry level = %s, want error", entries[0].Level)
	}
	if kind := entries[0].Data["kind"]; kind != shmap.KindOffsetOutOfRange {
		t.Errorf("entry kind = %v, want %s", kind, shmap.KindOffsetOutOfRange)
	}
}

func TestFinish_Success(t *testing.T) {
	log, hook := test.NewNullLogger()

	if code := finish(log, nil); code != 0 {
		t.Errorf("finish() = %d, want 0", code)
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.ErrorLevel {
			t.Errorf("successful run logged %s: %s", e.Level, e.Message)
		}
	}
}

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var l Logger = Zap{L: zap.New(core)}

	l.Debug("hidden", nil)
	l.Info("encoded", Fields{"tokens": 12})
	l.Error("failed", Fields{"file": "x.png"})

	if logs.Len() != 2 {
		t.Fatalf("got %d entries, want 2", logs.Len())
	}
	e := logs.All()[0]
	if e.Message != "encoded" || e.ContextMap()["tokens"] != int64(12) {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestNew(t *testing.T) {
	if _, err := New("debug"); err != nil {
		t.Fatal(err)
	}
	if _, err := New("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	var l Logger = Nop{}
	l.Info("nothing", Fields{"a": 1})
}

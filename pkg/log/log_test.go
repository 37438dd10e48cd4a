package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForComponentMemoizes(t *testing.T) {
	a := ForComponent("api")
	b := ForComponent("api")
	if a != b {
		t.Error("expected the same logger instance for the same name")
	}
}

func TestLevelsAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	l := ForComponent("testcomp")
	l.Infof("hello %d", 42)
	l.Warnf("careful")
	l.Errorf("boom")

	out := buf.String()
	for _, want := range []string{"INFO [testcomp] hello 42", "WARN [testcomp] careful", "ERROR [testcomp] boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	l := ForComponent("gated")
	l.Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug output should be suppressed by default")
	}

	EnableDebugFor("gated")
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [gated] visible") {
		t.Errorf("debug output missing after enable:\n%s", buf.String())
	}
}

func TestGlobalDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	ForComponent("anything").Debugf("global on")
	if !strings.Contains(buf.String(), "global on") {
		t.Error("global debug should enable every component")
	}
}

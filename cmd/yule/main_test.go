package main

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestRunTermScreenErrorRunsCleanup(t *testing.T) {
	errNoTTY := errors.New("no tty")
	oldScreen, oldStats := newScreen, withStats
	defer func() { newScreen, withStats = oldScreen, oldStats }()
	newScreen = func() (tcell.Screen, error) { return nil, errNoTTY }
	withStats = true

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	err := runTerm(termCmd, nil)
	if !errors.Is(err, errNoTTY) {
		t.Fatalf("err = %v, want wrapped %v", err, errNoTTY)
	}
	if !strings.Contains(buf.String(), "0 launches") {
		t.Errorf("stats not printed on failure: %q", buf.String())
	}
}

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRunSendsTrimmedLines(t *testing.T) {
	var got []string
	var prompts bytes.Buffer
	l := Listener{In: strings.NewReader("1\n\n  4  \nhelp"), Out: &prompts}

	if err := l.Run(context.Background(), func(cmd string) { got = append(got, cmd) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"1", "4", "help"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("commands = %q, want %q", got, want)
	}
	if strings.Count(prompts.String(), Prompt) != 5 {
		t.Errorf("prompts = %q", prompts.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	l := Listener{In: strings.NewReader("1\n2\n3\n")}

	err := l.Run(ctx, func(cmd string) {
		got = append(got, cmd)
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("commands after cancel: %q", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRunReportsReadErrors(t *testing.T) {
	err := Listener{In: failingReader{}}.Run(context.Background(), func(string) {})
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("err = %v", err)
	}
}

func TestStart(t *testing.T) {
	cmds := make(chan string, 4)
	done := Listener{In: strings.NewReader("5\n3\n")}.Start(context.Background(), func(cmd string) { cmds <- cmd })

	if err := <-done; err != nil {
		t.Fatalf("listener: %v", err)
	}
	close(cmds)
	var got []string
	for c := range cmds {
		got = append(got, c)
	}
	if strings.Join(got, " ") != "5 3" {
		t.Errorf("commands = %q", got)
	}
}

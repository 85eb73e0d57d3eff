package input

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/traditionalchinese"
)

func TestSecondSendBlocksUntilDrained(t *testing.T) {
	l := NewLines()
	ctx := context.Background()
	if err := l.Send(ctx, "counts"); err != nil {
		t.Fatalf("first send: %v", err)
	}

	sent := make(chan error, 1)
	go func() { sent <- l.Send(ctx, "entities list") }()

	select {
	case err := <-sent:
		t.Fatalf("second send returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if line, ok := l.TryRecv(); !ok || line != "counts" {
		t.Fatalf("first recv = %q, %v", line, ok)
	}
	select {
	case err := <-sent:
		if err != nil {
			t.Fatalf("second send: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("second send still blocked after drain")
	}
	if line, ok := l.TryRecv(); !ok || line != "entities list" {
		t.Fatalf("second recv = %q, %v", line, ok)
	}
	if _, ok := l.TryRecv(); ok {
		t.Error("empty channel yielded a line")
	}
}

func TestSendCancelled(t *testing.T) {
	l := NewLines()
	_ = l.Send(context.Background(), "first")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Send(ctx, "second"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
}

func TestCloseKeepsPendingLine(t *testing.T) {
	l := NewLines()
	_ = l.Send(context.Background(), "last")
	l.Close()
	l.Close()
	if l.Exhausted() {
		t.Fatal("exhausted with a pending line")
	}
	if err := l.Send(context.Background(), "late"); !errors.Is(err, ErrClosed) {
		t.Errorf("send after close = %v", err)
	}
	if line, ok := l.TryRecv(); !ok || line != "last" {
		t.Errorf("recv = %q, %v", line, ok)
	}
	if !l.Exhausted() {
		t.Error("not exhausted after drain")
	}
}

func TestReadFromKeepsOrder(t *testing.T) {
	l := NewLines()
	src := "counts\r\nentities list\n\ncomponents list --long"
	done := make(chan error, 1)
	go func() { done <- ReadFrom(context.Background(), strings.NewReader(src), l) }()

	want := []string{"counts", "entities list", "", "components list --long"}
	for _, w := range want {
		var line string
		deadline := time.After(time.Second)
		for {
			var ok bool
			if line, ok = l.TryRecv(); ok {
				break
			}
			select {
			case <-deadline:
				t.Fatalf("timed out waiting for %q", w)
			case <-time.After(time.Millisecond):
			}
		}
		if line != w {
			t.Errorf("line = %q, want %q", line, w)
		}
	}
	if err := <-done; err != nil {
		t.Errorf("ReadFrom: %v", err)
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	for _, label := range []string{"", "utf-8", "UTF8"} {
		enc, err := LookupEncoding(label)
		if err != nil || enc != nil {
			t.Errorf("LookupEncoding(%q) = %v, %v; want nil, nil", label, enc, err)
		}
	}
	if _, err := LookupEncoding("klingon"); err == nil {
		t.Error("unknown label accepted")
	}

	enc, err := LookupEncoding("big5")
	if err != nil || enc == nil {
		t.Fatalf("big5: %v", err)
	}
	raw, err := traditionalchinese.Big5.NewEncoder().String("components info --name 位置\n")
	if err != nil {
		t.Fatal(err)
	}
	got, err := io.ReadAll(DecodeReader(strings.NewReader(raw), enc))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "components info --name 位置\n" {
		t.Errorf("decoded %q", got)
	}

	var out bytes.Buffer
	if _, err := io.WriteString(EncodeWriter(&out, enc), "位置"); err != nil {
		t.Fatal(err)
	}
	if out.String() != raw[len("components info --name "):len(raw)-1] {
		t.Errorf("encoded %q", out.Bytes())
	}
}

func TestReadFromLongLine(t *testing.T) {
	l := NewLines()
	long := "components list --filter " + strings.Repeat("x", 70*1024)
	done := make(chan error, 1)
	go func() { done <- ReadFrom(context.Background(), strings.NewReader(long+"\ncounts\n"), l) }()

	for _, w := range []string{long, "counts"} {
		var line string
		deadline := time.After(time.Second)
		for {
			var ok bool
			if line, ok = l.TryRecv(); ok {
				break
			}
			select {
			case <-deadline:
				t.Fatalf("timed out waiting for a %d byte line", len(w))
			case <-time.After(time.Millisecond):
			}
		}
		if line != w {
			t.Errorf("got %d byte line, want %d bytes", len(line), len(w))
		}
	}
	if err := <-done; err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
}

func TestLineReaderEndings(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\r\nb\n\nc"))
	for _, w := range []string{"a", "b", "", "c"} {
		got, err := lr.ReadLine()
		if err != nil || got != w {
			t.Fatalf("ReadLine = %q, %v; want %q", got, err, w)
		}
	}
	if _, err := lr.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("final err = %v, want EOF", err)
	}
}

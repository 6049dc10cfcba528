package event

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	evs := []Event{
		Enter(BlockDoc, nil),
		Enter(BlockP, nil),
		T(TextNormal, "a "),
		EnterS(SpanStrong, nil),
		T(TextNormal, "b"),
		LeaveS(SpanStrong),
		Leave(BlockP),
		Leave(BlockDoc),
	}
	want := `EnterBlock(doc)
  EnterBlock(p)
    Text(normal, "a ")
    EnterSpan(strong)
      Text(normal, "b")
    LeaveSpan(strong)
  LeaveBlock(p)
LeaveBlock(doc)
`
	if diff := cmp.Diff(want, Format(evs)); diff != "" {
		t.Errorf("Format (-want +got):\n%s", diff)
	}
}

func TestRecorderCopiesText(t *testing.T) {
	r := &Recorder{}
	buf := []byte("abc")
	if err := r.Text(TextNormal, buf); err != nil {
		t.Fatal(err)
	}
	copy(buf, "xyz")
	if got := string(r.Events[0].Bytes); got != "abc" {
		t.Errorf("recorded %q", got)
	}
}

// skipper records events and skips every table.
type skipper struct {
	Recorder
}

func (s *skipper) EnterBlock(t BlockType, d any) error {
	s.Recorder.EnterBlock(t, d)
	if t == BlockTable {
		return ErrSkip
	}
	return nil
}

func TestReplay(t *testing.T) {
	evs := []Event{
		Enter(BlockDoc, nil),
		Enter(BlockTable, nil),
		Enter(BlockTR, nil),
		Leave(BlockTR),
		Leave(BlockTable),
		EnterS(SpanA, &LinkDetail{Href: "u"}),
		LeaveS(SpanA),
		T(TextBR, "\n"),
		Leave(BlockDoc),
	}
	s := &skipper{}
	if err := Replay(evs, s); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(s.Events, evs) {
		t.Errorf("got %v, want %v", s.Events, evs)
	}
}

func TestReplayStops(t *testing.T) {
	boom := errors.New("boom")
	h := &failing{at: 2, err: boom}
	evs := []Event{Enter(BlockDoc, nil), Enter(BlockP, nil), T(TextNormal, "x"), Leave(BlockP)}
	if err := Replay(evs, h); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if h.n != 3 {
		t.Errorf("delivered %d events", h.n)
	}
	var e *Error
	if err := Deliver(&Event{Type: Type(42)}, h); !errors.As(err, &e) {
		t.Errorf("unknown type: expected *Error, got %v", err)
	}
}

type failing struct {
	n   int
	at  int
	err error
}

func (f *failing) next() error {
	f.n++
	if f.n-1 == f.at {
		return f.err
	}
	return nil
}

func (f *failing) EnterBlock(BlockType, any) error { return f.next() }
func (f *failing) LeaveBlock(BlockType, any) error { return f.next() }
func (f *failing) EnterSpan(SpanType, any) error { return f.next() }
func (f *failing) LeaveSpan(SpanType, any) error { return f.next() }
func (f *failing) Text(TextType, []byte) error { return f.next() }

func TestTypeNames(t *testing.T) {
	for bt := range blockNames {
		d, _ := bt.MarshalText()
		var back BlockType
		if err := back.UnmarshalText(d); err != nil || back != bt {
			t.Errorf("block %s: got %s, %v", bt, back, err)
		}
	}
	for st := range spanNames {
		d, _ := st.MarshalText()
		var back SpanType
		if err := back.UnmarshalText(d); err != nil || back != st {
			t.Errorf("span %s: got %s, %v", st, back, err)
		}
	}
	for tt := range textNames {
		d, _ := tt.MarshalText()
		var back TextType
		if err := back.UnmarshalText(d); err != nil || back != tt {
			t.Errorf("text %s: got %s, %v", tt, back, err)
		}
	}
	var et Type
	if err := et.UnmarshalText([]byte("LeaveSpan")); err != nil || et != LeaveSpan {
		t.Errorf("got %s, %v", et, err)
	}
	if BlockType(77).String() != "block(77)" {
		t.Errorf("got %s", BlockType(77))
	}
}

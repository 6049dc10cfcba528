package event

import "errors"

// ErrSkip is returned by a Handler from an enter event which it consumed
// without opening anything. A tokenizer may omit the construct's content in
// response but must still deliver the matching leave event. ErrSkip is not a
// failure and tokenizers do not abort on it.
var ErrSkip = errors.New("skip")

// Recorder is a Handler which records every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) EnterBlock(t BlockType, detail any) error {
	r.Events = append(r.Events, Enter(t, detail))
	return nil
}

func (r *Recorder) LeaveBlock(t BlockType, detail any) error {
	r.Events = append(r.Events, Event{Type: LeaveBlock, Block: t, Detail: detail})
	return nil
}

func (r *Recorder) EnterSpan(t SpanType, detail any) error {
	r.Events = append(r.Events, EnterS(t, detail))
	return nil
}

func (r *Recorder) LeaveSpan(t SpanType, detail any) error {
	r.Events = append(r.Events, Event{Type: LeaveSpan, Span: t, Detail: detail})
	return nil
}

func (r *Recorder) Text(t TextType, text []byte) error {
	// the tokenizer may reuse its buffer
	r.Events = append(r.Events, Event{Type: Text, Text: t, Bytes: append([]byte(nil), text...)})
	return nil
}

// Replay delivers events to h in order. ErrSkip results are ignored and
// every event is delivered; any other error stops the replay and is
// returned.
func Replay(events []Event, h Handler) error {
	for i := range events {
		if err := Deliver(&events[i], h); err != nil && !errors.Is(err, ErrSkip) {
			return err
		}
	}
	return nil
}

// Deliver calls the Handler method corresponding to ev.
func Deliver(ev *Event, h Handler) error {
	switch ev.Type {
	case EnterBlock:
		return h.EnterBlock(ev.Block, ev.Detail)
	case LeaveBlock:
		return h.LeaveBlock(ev.Block, ev.Detail)
	case EnterSpan:
		return h.EnterSpan(ev.Span, ev.Detail)
	case LeaveSpan:
		return h.LeaveSpan(ev.Span, ev.Detail)
	case Text:
		return h.Text(ev.Text, ev.Bytes)
	}
	return &Error{Msg: "unknown event type " + ev.Type.String()}
}

// Error reports an event which cannot be delivered.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

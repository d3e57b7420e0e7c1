package input

import "sync"

// Sink receives touch frames and mode requests.
type Sink interface {
	Select(slot int) error
	SetX(v int)
	SetY(v int)
	Lift()
	Commit()
	Cycle() error
}

// Dispatch applies one event to sink. Events without a mapping are
// ignored.
func Dispatch(sink Sink, ev Event) error {
	switch ev.Type {
	case EV_KEY:
		if ev.Code == KEY_VOLUMEUP && ev.Value == 1 {
			return sink.Cycle()
		}
	case EV_ABS:
		switch ev.Code {
		case ABS_MT_SLOT:
			return sink.Select(int(ev.Value))
		case ABS_MT_POSITION_X:
			sink.SetX(int(ev.Value))
		case ABS_MT_POSITION_Y:
			sink.SetY(int(ev.Value))
		case ABS_MT_TRACKING_ID:
			if ev.Value == -1 {
				sink.Lift()
			}
		}
	case EV_SYN:
		if ev.Code == SYN_REPORT {
			sink.Commit()
		}
	}
	return nil
}

// Serialize wraps sink so calls from several devices never overlap.
func Serialize(sink Sink) Sink {
	return &lockedSink{sink: sink}
}

type lockedSink struct {
	mu   sync.Mutex
	sink Sink
}

func (l *lockedSink) Select(slot int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.Select(slot)
}

func (l *lockedSink) SetX(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.SetX(v)
}

func (l *lockedSink) SetY(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.SetY(v)
}

func (l *lockedSink) Lift() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.Lift()
}

func (l *lockedSink) Commit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.Commit()
}

func (l *lockedSink) Cycle() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink.Cycle()
}

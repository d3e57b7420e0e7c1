// Package input reads Linux evdev events and maps them onto the touch
// frame protocol.
package input

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// Event types and codes from linux/input-event-codes.h.
const (
	EV_SYN = 0x00
	EV_KEY = 0x01
	EV_ABS = 0x03

	SYN_REPORT = 0x00

	KEY_VOLUMEUP = 115

	ABS_MT_SLOT        = 0x2f
	ABS_MT_POSITION_X  = 0x35
	ABS_MT_POSITION_Y  = 0x36
	ABS_MT_TRACKING_ID = 0x39
)

// EventSize is the size of struct input_event on 64-bit kernels.
const EventSize = 24

// Event is one decoded input_event.
type Event struct {
	Time  time.Duration // since the epoch
	Type  uint16
	Code  uint16
	Value int32
}

func (e Event) String() string {
	return fmt.Sprintf("type=%#x code=%#x value=%d", e.Type, e.Code, e.Value)
}

type rawEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Decoder reads input_event records from a stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the next event. A truncated record yields
// io.ErrUnexpectedEOF.
func (d *Decoder) Decode() (Event, error) {
	var raw rawEvent
	if err := binary.Read(d.r, binary.LittleEndian, &raw); err != nil {
		return Event{}, err
	}
	return Event{
		Time:  time.Duration(raw.Sec)*time.Second + time.Duration(raw.Usec)*time.Microsecond,
		Type:  raw.Type,
		Code:  raw.Code,
		Value: raw.Value,
	}, nil
}

// Encode writes ev in the kernel record layout.
func Encode(w io.Writer, ev Event) error {
	raw := rawEvent{
		Sec:   int64(ev.Time / time.Second),
		Usec:  int64(ev.Time % time.Second / time.Microsecond),
		Type:  ev.Type,
		Code:  ev.Code,
		Value: ev.Value,
	}
	return binary.Write(w, binary.LittleEndian, &raw)
}

// Package input turns raw terminal bytes into per-frame input: held
// direction keys, edge-triggered action keys and SGR mouse reports.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so this bridges the gap between them.
const keyHoldDuration = 80 * time.Millisecond

// Mouse button codes in SGR reports.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
)

const (
	mouseMotionFlag = 32
	mouseWheelFlag  = 64
)

// MouseEvent is a decoded SGR mouse report. Col and Row are 1-based
// terminal cells.
type MouseEvent struct {
	Col, Row int
	Button   int
	Press    bool // false for release
	Motion   bool
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    int  // Space presses since the last frame
	Enter   bool // Pressed since the last frame
	Escape  bool
	Tab     bool
	Number  int // Last digit pressed since the last frame, -1 if none
	Clicks  []MouseEvent
	Pointer *MouseEvent // Latest pointer position seen, nil if none
	Pressed []byte
}

// Active reports whether anything at all was received this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	quit  time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next frame
	// escHeld is set when the last frame ended on a bare ESC. It only counts
	// as the Escape key if nothing follows it on the next read.
	escHeld bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets held keys, so a key held across a state change
// doesn't carry over.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := append([]byte(nil), s.pending...)
	s.pending = s.pending[:0]
	closed := false

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Parse(s, buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// Parse decodes buf at time now, updating the stream's key state.
func Parse(s *Stream, buf []byte, now time.Time) Input {
	in := Input{Number: -1, Pressed: buf}
	escHeld := s.escHeld
	s.escHeld = false

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i == len(buf)-1 && !(escHeld && len(buf) == 1) {
				// Possibly the start of a mouse report split across reads
				s.pending = append(s.pending, b)
				s.escHeld = true
				break
			}
			n, complete := parseEscape(s, &in, buf[i:], now)
			if !complete {
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			i += n - 1
			continue
		}

		// Single byte handling - update key state
		applyByte(s, &in, b, now)
	}

	in.Quit = in.Quit || now.Sub(s.state.quit) < keyHoldDuration
	in.Left = now.Sub(s.state.left) < keyHoldDuration
	in.Right = now.Sub(s.state.right) < keyHoldDuration
	in.Up = now.Sub(s.state.up) < keyHoldDuration
	in.Down = now.Sub(s.state.down) < keyHoldDuration
	return in
}

// parseEscape handles a sequence starting with ESC. It returns the number of
// bytes consumed, or complete=false when the sequence is cut off.
func parseEscape(s *Stream, in *Input, seq []byte, now time.Time) (n int, complete bool) {
	if len(seq) == 1 || seq[1] != '[' {
		// Lone escape key
		in.Escape = true
		return 1, true
	}
	if len(seq) < 3 {
		return 0, false
	}

	switch seq[2] {
	case 'A':
		s.state.up = now
		return 3, true
	case 'B':
		s.state.down = now
		return 3, true
	case 'C':
		s.state.right = now
		return 3, true
	case 'D':
		s.state.left = now
		return 3, true
	case 'Z': // Shift+Tab
		in.Tab = true
		return 3, true
	case '<':
		return parseMouse(in, seq)
	}
	// Unknown CSI: skip to its final byte
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// parseMouse decodes an SGR report: ESC [ < b ; x ; y (M|m).
func parseMouse(in *Input, seq []byte) (int, bool) {
	var fields [3]int
	field, start := 0, 3
	for j := 3; j < len(seq); j++ {
		c := seq[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field > 2 {
				return j + 1, true
			}
			v, err := strconv.Atoi(string(seq[start:j]))
			if err != nil {
				return j + 1, true
			}
			fields[field] = v
			field++
			start = j + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return j + 1, true
			}
			addMouse(in, fields, c == 'M')
			return j + 1, true
		default:
			// Malformed report
			return j + 1, true
		}
	}
	return 0, false
}

func addMouse(in *Input, f [3]int, press bool) {
	code := f[0]
	if code&mouseWheelFlag != 0 {
		return
	}
	ev := MouseEvent{
		Col:    f[1],
		Row:    f[2],
		Button: code & 3,
		Press:  press,
		Motion: code&mouseMotionFlag != 0,
	}
	pos := ev
	in.Pointer = &pos
	if ev.Press && !ev.Motion {
		in.Clicks = append(in.Clicks, ev)
	}
}

// applyByte updates the input and key state for a plain byte.
func applyByte(s *Stream, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03:
		s.state.quit = now
	case 'a', 'A', 'h', 'H':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'w', 'W', 'k', 'K':
		s.state.up = now
	case 's', 'S', 'j', 'J':
		s.state.down = now
	case ' ':
		in.Fire++
	case '\n', '\r':
		in.Enter = true
	case '\t':
		in.Tab = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}

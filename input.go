package wijjit

import (
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Key represents a parsed input key.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeySpace

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlK
	KeyCtrlL
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Modifier flags attached to key and mouse events.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// keyNames maps keys to their canonical lowercase names, used for
// single-key handler registration. Rune keys use the rune itself.
var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyCtrlA:     "ctrl+a",
	KeyCtrlB:     "ctrl+b",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
	KeyCtrlE:     "ctrl+e",
	KeyCtrlF:     "ctrl+f",
	KeyCtrlG:     "ctrl+g",
	KeyCtrlK:     "ctrl+k",
	KeyCtrlL:     "ctrl+l",
	KeyCtrlN:     "ctrl+n",
	KeyCtrlO:     "ctrl+o",
	KeyCtrlP:     "ctrl+p",
	KeyCtrlQ:     "ctrl+q",
	KeyCtrlR:     "ctrl+r",
	KeyCtrlS:     "ctrl+s",
	KeyCtrlT:     "ctrl+t",
	KeyCtrlU:     "ctrl+u",
	KeyCtrlV:     "ctrl+v",
	KeyCtrlW:     "ctrl+w",
	KeyCtrlX:     "ctrl+x",
	KeyCtrlY:     "ctrl+y",
	KeyCtrlZ:     "ctrl+z",
}

// MouseButton identifies which button a mouse event refers to.
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction identifies what happened.
type MouseAction uint8

const (
	MouseActionPress MouseAction = iota
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// InputType distinguishes input event categories.
type InputType uint8

const (
	InputKey InputType = iota
	InputMouse
	InputError
	InputClosed
)

// InputEvent represents one parsed terminal input event.
type InputEvent struct {
	Type      InputType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Err       error

	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

// KeyName returns the canonical lowercase name for the event's key, used to
// match single-key handlers. Printable runes return the lowercased rune.
func (e InputEvent) KeyName() string {
	if e.Key == KeyRune {
		return strings.ToLower(string(e.Rune))
	}
	if name, ok := keyNames[e.Key]; ok {
		return name
	}
	return ""
}

// canonicalKeyName normalizes a user-supplied key name to the form KeyName
// produces, so registrations like "Ctrl+S" match events.
func canonicalKeyName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// escapeTimeout distinguishes a standalone ESC press from the start of an
// escape sequence.
const escapeTimeout = 50 * time.Millisecond

// InputReader parses raw terminal bytes into InputEvents on a channel.
type InputReader struct {
	file    *os.File
	eventCh chan InputEvent
	stopCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; partial UTF-8 and escape
	// sequences survive read boundaries.
	buf []byte
}

// NewInputReader creates an input reader over the given file.
// Pass nil to read from os.Stdin.
func NewInputReader(f *os.File) *InputReader {
	if f == nil {
		f = os.Stdin
	}
	return &InputReader{
		file:    f,
		eventCh: make(chan InputEvent, 256),
		stopCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// Events returns the channel of parsed input events.
func (r *InputReader) Events() <-chan InputEvent {
	return r.eventCh
}

// Start begins reading input in a goroutine.
func (r *InputReader) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// Stop signals the reader to stop. The blocked read is released by the
// caller closing the underlying file.
func (r *InputReader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	close(r.stopCh)
}

func (r *InputReader) readLoop() {
	chunk := make([]byte, 128)
	for {
		n, err := r.file.Read(chunk)
		select {
		case <-r.stopCh:
			r.sendEvent(InputEvent{Type: InputClosed})
			return
		default:
		}
		if err != nil {
			r.sendEvent(InputEvent{Type: InputError, Err: err})
			return
		}
		if n == 0 {
			continue
		}

		r.buf = append(r.buf, chunk[:n]...)
		consumed := r.parseInput(r.buf)
		if consumed > 0 {
			r.buf = r.buf[:copy(r.buf, r.buf[consumed:])]
		}

		// A lone ESC left in the buffer is a real Escape press if no
		// continuation bytes arrive within the timeout.
		if len(r.buf) == 1 && r.buf[0] == 0x1b {
			time.Sleep(escapeTimeout)
			if r.drainPending(chunk) {
				continue
			}
			r.sendEvent(InputEvent{Type: InputKey, Key: KeyEscape})
			r.buf = r.buf[:0]
		}
	}
}

// drainPending performs a non-blocking-ish follow-up read after an ESC to
// pick up the rest of an escape sequence. Returns true if bytes arrived.
func (r *InputReader) drainPending(chunk []byte) bool {
	// Raw mode has VMIN=1 so a zero-byte poll is not available through
	// os.File; rely on the kernel buffer having the rest of the sequence
	// already if the ESC began one.
	fd := int(r.file.Fd())
	var avail int
	if n, err := peekAvailable(fd); err == nil {
		avail = n
	}
	if avail <= 0 {
		return false
	}
	n, err := r.file.Read(chunk)
	if err != nil || n == 0 {
		return false
	}
	r.buf = append(r.buf, chunk[:n]...)
	consumed := r.parseInput(r.buf)
	if consumed > 0 {
		r.buf = r.buf[:copy(r.buf, r.buf[consumed:])]
	}
	return true
}

// parseInput parses raw bytes into events and returns the count consumed,
// stopping at an incomplete trailing sequence.
func (r *InputReader) parseInput(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			r.sendEvent(InputEvent{Type: InputKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		if b == 0x1b {
			if i+1 >= n {
				return i // Wait for more data
			}
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Key != KeyNone || ev.Type != InputKey {
				r.sendEvent(ev)
			}
			i += consumed
			continue
		}

		if b < 0x20 {
			r.sendEvent(parseControl(b))
			i++
			continue
		}

		if b == 0x7f {
			r.sendEvent(InputEvent{Type: InputKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		rn, size := utf8.DecodeRune(data[i:])
		r.sendEvent(InputEvent{Type: InputKey, Key: KeyRune, Rune: rn})
		i += size
	}
	return i
}

// parseEscape parses an escape sequence, returning 0 consumed on incomplete.
func parseEscape(data []byte) (int, InputEvent) {
	if len(data) < 2 {
		return 0, InputEvent{}
	}

	if data[1] == 0x1b {
		return 2, InputEvent{Type: InputKey, Key: KeyEscape, Modifiers: ModAlt}
	}
	if data[1] == '[' {
		return parseCSI(data)
	}
	if data[1] == 'O' {
		return parseSS3(data)
	}

	// Alt+control
	if data[1] < 0x20 {
		ev := parseControl(data[1])
		ev.Modifiers |= ModAlt
		return 2, ev
	}
	// Alt+printable
	if data[1] >= 0x20 && data[1] < 0x7f {
		return 2, InputEvent{Type: InputKey, Key: KeyRune, Rune: rune(data[1]), Modifiers: ModAlt}
	}

	return 0, InputEvent{}
}

// csiKeys maps CSI parameter bodies to keys.
var csiKeys = map[string]Key{
	"A":   KeyUp,
	"B":   KeyDown,
	"C":   KeyRight,
	"D":   KeyLeft,
	"H":   KeyHome,
	"F":   KeyEnd,
	"Z":   KeyBacktab,
	"1~":  KeyHome,
	"2~":  KeyInsert,
	"3~":  KeyDelete,
	"4~":  KeyEnd,
	"5~":  KeyPageUp,
	"6~":  KeyPageDown,
	"11~": KeyF1,
	"12~": KeyF2,
	"13~": KeyF3,
	"14~": KeyF4,
	"15~": KeyF5,
	"17~": KeyF6,
	"18~": KeyF7,
	"19~": KeyF8,
	"20~": KeyF9,
	"21~": KeyF10,
	"23~": KeyF11,
	"24~": KeyF12,
}

// parseCSI parses a CSI sequence.
func parseCSI(data []byte) (int, InputEvent) {
	if len(data) < 3 {
		return 0, InputEvent{}
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return parseSGRMouse(data)
	}

	end := 2
	maxScan := min(len(data), 16)
	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			break
		}
		if b < 0x20 || b > 0x7e {
			return 0, InputEvent{}
		}
		end++
	}
	if end <= 2 || end > maxScan {
		return 0, InputEvent{}
	}
	last := data[end-1]
	if !((last >= 'A' && last <= 'Z') || (last >= 'a' && last <= 'z') || last == '~') {
		return 0, InputEvent{} // No terminator yet
	}

	body := string(data[2:end])
	if key, ok := csiKeys[body]; ok {
		return end, InputEvent{Type: InputKey, Key: key}
	}

	// Modified arrows: "1;<mod><letter>"
	if len(body) == 4 && body[0] == '1' && body[1] == ';' {
		if key, ok := csiKeys[body[3:]]; ok {
			return end, InputEvent{Type: InputKey, Key: key, Modifiers: csiModifier(body[2])}
		}
	}

	// Unknown but valid CSI syntax: consume and swallow
	return end, InputEvent{Type: InputKey, Key: KeyNone}
}

// csiModifier decodes the xterm modifier digit (2=Shift 3=Alt 5=Ctrl ...).
func csiModifier(digit byte) Modifier {
	v := int(digit-'0') - 1
	var m Modifier
	if v&1 != 0 {
		m |= ModShift
	}
	if v&2 != 0 {
		m |= ModAlt
	}
	if v&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// ss3Keys maps SS3 finals to keys.
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// parseSS3 parses an SS3 sequence.
func parseSS3(data []byte) (int, InputEvent) {
	if len(data) < 3 {
		return 0, InputEvent{}
	}
	if key, ok := ss3Keys[data[2]]; ok {
		return 3, InputEvent{Type: InputKey, Key: key}
	}
	// Unknown SS3: consume to prevent garbage
	return 3, InputEvent{Type: InputKey, Key: KeyNone}
}

// ctrlKeys maps control bytes to keys.
var ctrlKeys = map[byte]Key{
	0x01: KeyCtrlA, 0x02: KeyCtrlB, 0x03: KeyCtrlC, 0x04: KeyCtrlD,
	0x05: KeyCtrlE, 0x06: KeyCtrlF, 0x07: KeyCtrlG, 0x0b: KeyCtrlK,
	0x0c: KeyCtrlL, 0x0e: KeyCtrlN, 0x0f: KeyCtrlO, 0x10: KeyCtrlP,
	0x11: KeyCtrlQ, 0x12: KeyCtrlR, 0x13: KeyCtrlS, 0x14: KeyCtrlT,
	0x15: KeyCtrlU, 0x16: KeyCtrlV, 0x17: KeyCtrlW, 0x18: KeyCtrlX,
	0x19: KeyCtrlY, 0x1a: KeyCtrlZ,
}

// parseControl maps control characters to key events.
func parseControl(b byte) InputEvent {
	switch b {
	case 0x08:
		return InputEvent{Type: InputKey, Key: KeyBackspace}
	case 0x09:
		return InputEvent{Type: InputKey, Key: KeyTab}
	case 0x0a, 0x0d:
		return InputEvent{Type: InputKey, Key: KeyEnter}
	case 0x1b:
		return InputEvent{Type: InputKey, Key: KeyEscape}
	}
	if key, ok := ctrlKeys[b]; ok {
		return InputEvent{Type: InputKey, Key: key}
	}
	return InputEvent{Type: InputKey, Key: KeyNone}
}

// parseSGRMouse parses an SGR mouse sequence: ESC [ < Btn ; X ; Y M/m.
func parseSGRMouse(data []byte) (int, InputEvent) {
	if len(data) < 9 {
		return 0, InputEvent{}
	}

	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) || (data[end] != 'M' && data[end] != 'm') {
		return 0, InputEvent{}
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return 0, InputEvent{}
	}

	ev := InputEvent{Type: InputMouse, MouseX: x - 1, MouseY: y - 1}

	// Bits 0-1: button, bit 5: motion, bit 6: scroll
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		case 3:
			ev.MouseBtn = MouseBtnNone
		}
		switch {
		case data[end] == 'm':
			ev.MouseAction = MouseActionRelease
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}

	return end + 1, ev
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0
	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			default:
				return 0, 0, 0, false
			}
			state++
			val = 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// sendEvent sends an event to the channel, dropping if full.
func (r *InputReader) sendEvent(ev InputEvent) {
	select {
	case r.eventCh <- ev:
	default:
	}
}

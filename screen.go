package wijjit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-runewidth"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Screen manages the terminal display with double buffering and diff-based
// updates. It also owns raw mode and guarantees terminal restoration.
type Screen struct {
	front  *Buffer   // What's currently displayed
	back   *Buffer   // What we're drawing to
	writer io.Writer // Output destination (usually os.Stdout)
	fd     int       // File descriptor for terminal operations

	width  int
	height int

	// Terminal state
	origTermios  *unix.Termios
	inRawMode    bool
	mouseEnabled bool

	// Resize handling
	resizeChan chan Size
	sigChan    chan os.Signal

	// Rendering state
	lastStyle Style        // Last style we emitted (for optimization)
	buf       bytes.Buffer // Reusable buffer for building output

	// Protects buffer access during resize
	mu sync.Mutex
}

// Size represents dimensions.
type Size struct {
	Width  int
	Height int
}

// NewScreen creates a new screen writing to the given writer.
// Pass nil to use os.Stdout.
func NewScreen(w io.Writer) (*Screen, error) {
	if w == nil {
		w = os.Stdout
	}

	fd := int(os.Stdout.Fd())
	width, height, err := getTerminalSize(fd)
	if err != nil {
		width, height = 80, 24
	}

	s := &Screen{
		front:      NewBuffer(width, height),
		back:       NewBuffer(width, height),
		writer:     w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
		lastStyle:  DefaultStyle(),
	}

	return s, nil
}

// getTerminalSize returns the current terminal dimensions.
func getTerminalSize(fd int) (int, int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return int(ws.Col), int(ws.Row), nil
	}
	if term.IsTerminal(fd) {
		return term.GetSize(fd)
	}
	return 0, 0, err
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	return Size{Width: s.width, Height: s.height}
}

// Width returns the screen width.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height.
func (s *Screen) Height() int {
	return s.height
}

// Buffer returns the back buffer for drawing.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// ResizeChan returns a channel that receives size updates on terminal resize.
func (s *Screen) ResizeChan() <-chan Size {
	return s.resizeChan
}

// EnterRawMode puts the terminal into raw mode for TUI operation.
func (s *Screen) EnterRawMode() error {
	if s.inRawMode {
		return nil
	}

	termios, err := unix.IoctlGetTermios(s.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("failed to get termios: %w", err)
	}
	s.origTermios = termios

	raw := *termios
	// Input flags: disable break, CR to NL, parity, strip, flow control
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// Output flags: disable post processing
	raw.Oflag &^= unix.OPOST
	// Control flags: set 8 bit chars
	raw.Cflag |= unix.CS8
	// Local flags: disable echo, canonical mode, signals, extended input
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// Control chars: min bytes = 1, timeout = 0
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}

	s.inRawMode = true

	signal.Notify(s.sigChan, syscall.SIGWINCH)
	go s.handleSignals()

	s.writeString("\x1b[?1049h") // Enter alternate screen
	s.writeString("\x1b[2J")     // Clear screen (front buffer matches actual screen)
	s.writeString("\x1b[H")      // Move cursor to home position
	s.writeString("\x1b[?25l")   // Hide cursor

	return nil
}

// ExitRawMode restores the terminal to its original state.
// Safe to call multiple times and on every exit path.
func (s *Screen) ExitRawMode() error {
	if !s.inRawMode {
		return nil
	}

	s.DisableMouse()
	s.writeString("\x1b[0m")     // Reset style
	s.writeString("\x1b[?25h")   // Show cursor
	s.writeString("\x1b[?1049l") // Exit alternate screen

	signal.Stop(s.sigChan)

	if s.origTermios != nil {
		if err := unix.IoctlSetTermios(s.fd, ioctlSetTermios, s.origTermios); err != nil {
			return fmt.Errorf("failed to restore termios: %w", err)
		}
	}

	s.inRawMode = false
	return nil
}

// EnableMouse turns on SGR mouse reporting (buttons and motion).
func (s *Screen) EnableMouse() {
	if s.mouseEnabled {
		return
	}
	s.writeString("\x1b[?1002h") // Button-event tracking
	s.writeString("\x1b[?1003h") // Any-event tracking (hover)
	s.writeString("\x1b[?1006h") // SGR extended coordinates
	s.mouseEnabled = true
}

// DisableMouse turns off mouse reporting.
func (s *Screen) DisableMouse() {
	if !s.mouseEnabled {
		return
	}
	s.writeString("\x1b[?1006l")
	s.writeString("\x1b[?1003l")
	s.writeString("\x1b[?1002l")
	s.mouseEnabled = false
}

// handleSignals processes SIGWINCH resize notifications.
func (s *Screen) handleSignals() {
	for range s.sigChan {
		width, height, err := getTerminalSize(s.fd)
		if err != nil {
			continue
		}
		if width != s.width || height != s.height {
			s.mu.Lock()
			s.width = width
			s.height = height
			s.front.Resize(width, height)
			s.back.Resize(width, height)
			// Clear both buffers to avoid stale content
			s.front.Clear()
			s.back.Clear()
			s.writeString("\x1b[2J")
			s.mu.Unlock()
			// Non-blocking send (outside lock to avoid potential deadlock)
			select {
			case s.resizeChan <- Size{Width: width, Height: height}:
			default:
			}
		}
	}
}

// Flush renders the back buffer to the terminal using per-cell diff.
// Only cells that actually changed are written. Rows without writes since
// the last frame are skipped entirely.
func (s *Screen) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()

	changed := false
	cursorX, cursorY := -1, -1

	for y := 0; y < s.height; y++ {
		if !s.back.RowDirty(y) {
			continue
		}

		for x := 0; x < s.width; x++ {
			backCell := s.back.Get(x, y)
			if backCell == s.front.Get(x, y) {
				continue
			}

			// Placeholder cells (second half of double-width chars) are not emitted
			if backCell.Rune == 0 {
				s.front.Set(x, y, backCell)
				continue
			}

			changed = true

			if cursorX != x || cursorY != y {
				s.buf.WriteString("\x1b[")
				s.writeIntToBuf(y + 1)
				s.buf.WriteByte(';')
				s.writeIntToBuf(x + 1)
				s.buf.WriteByte('H')
			}

			s.writeCell(backCell)
			s.front.Set(x, y, backCell)
			rw := runewidth.RuneWidth(backCell.Rune)
			if rw == 0 {
				rw = 1
			}
			cursorX = x + rw
			cursorY = y
		}
	}

	if changed {
		s.buf.WriteString("\x1b[0m")
		s.lastStyle = DefaultStyle()
	}

	s.back.ClearDirtyFlags()
	s.front.ClearDirtyFlags()

	if s.buf.Len() > 0 {
		s.writer.Write(s.buf.Bytes())
	}
}

// FlushFull does a complete redraw without diffing.
func (s *Screen) FlushFull() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	s.buf.WriteString("\x1b[H")
	s.lastStyle = DefaultStyle()
	s.buf.WriteString("\x1b[0m")

	for y := 0; y < s.height; y++ {
		s.buf.WriteString("\x1b[")
		s.writeIntToBuf(y + 1)
		s.buf.WriteString(";1H")
		for x := 0; x < s.width; x++ {
			c := s.back.Get(x, y)
			if c.Rune == 0 {
				continue
			}
			s.writeCell(c)
			s.front.Set(x, y, c)
		}
	}

	s.buf.WriteString("\x1b[0m")
	s.lastStyle = DefaultStyle()
	s.back.ClearDirtyFlags()
	s.front.ClearDirtyFlags()
	s.writer.Write(s.buf.Bytes())
}

// writeCell emits the ANSI sequences for a single cell, diffing the style
// against the last emitted style.
func (s *Screen) writeCell(c Cell) {
	if c.Style != s.lastStyle {
		s.writeStyle(c.Style)
		s.lastStyle = c.Style
	}
	s.buf.WriteRune(c.Rune)
}

// writeStyle emits a full SGR reset-and-set for the style.
func (s *Screen) writeStyle(st Style) {
	s.buf.WriteString("\x1b[0")

	if st.Attr.Has(AttrBold) {
		s.buf.WriteString(";1")
	}
	if st.Attr.Has(AttrDim) {
		s.buf.WriteString(";2")
	}
	if st.Attr.Has(AttrItalic) {
		s.buf.WriteString(";3")
	}
	if st.Attr.Has(AttrUnderline) {
		s.buf.WriteString(";4")
	}
	if st.Attr.Has(AttrBlink) {
		s.buf.WriteString(";5")
	}
	if st.Attr.Has(AttrInverse) {
		s.buf.WriteString(";7")
	}

	s.writeColor(st.FG, false)
	s.writeColor(st.BG, true)
	s.buf.WriteByte('m')
}

// writeColor appends the SGR parameters for a color.
func (s *Screen) writeColor(c Color, background bool) {
	switch c.Mode {
	case ColorDefault:
		// Covered by the leading reset
	case Color16:
		base := 30
		idx := int(c.Index)
		if idx >= 8 {
			base = 90
			idx -= 8
		}
		if background {
			base += 10
		}
		s.buf.WriteByte(';')
		s.writeIntToBuf(base + idx)
	case Color256:
		if background {
			s.buf.WriteString(";48;5;")
		} else {
			s.buf.WriteString(";38;5;")
		}
		s.writeIntToBuf(int(c.Index))
	case ColorRGB:
		if background {
			s.buf.WriteString(";48;2;")
		} else {
			s.buf.WriteString(";38;2;")
		}
		s.writeIntToBuf(int(c.R))
		s.buf.WriteByte(';')
		s.writeIntToBuf(int(c.G))
		s.buf.WriteByte(';')
		s.writeIntToBuf(int(c.B))
	}
}

// writeIntToBuf writes an integer to the buffer without allocation.
func (s *Screen) writeIntToBuf(n int) {
	if n == 0 {
		s.buf.WriteByte('0')
		return
	}
	if n < 0 {
		s.buf.WriteByte('-')
		n = -n
	}

	var scratch [10]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	s.buf.Write(scratch[i:])
}

// writeString writes a raw string directly to the terminal.
func (s *Screen) writeString(str string) {
	io.WriteString(s.writer, str)
}

package communication

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"trapmouse/meta"
)

var ErrFrameTooLarge = errors.New("frame exceeds maximum size")

// FrameReader splits a byte stream into newline terminated frames of at
// most meta.MAX_FRAME_SIZE bytes, not counting the newline.
type FrameReader struct {
	sc *bufio.Scanner
}

func NewFrameReader(r io.Reader) *FrameReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), meta.MAX_FRAME_SIZE+1)
	return &FrameReader{sc: sc}
}

// ReadFrame returns the next non-blank frame with surrounding whitespace
// trimmed. It returns io.EOF once the stream is exhausted.
func (f *FrameReader) ReadFrame() (string, error) {
	for f.sc.Scan() {
		if line := strings.TrimSpace(f.sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := f.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return "", ErrFrameTooLarge
		}
		return "", err
	}
	return "", io.EOF
}

// WriteFrame writes frame followed by a newline.
func WriteFrame(w io.Writer, frame string) error {
	_, err := io.WriteString(w, frame+"\n")
	return err
}

package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const maxLineBytes = 1 << 20

// Decoder reads one step per line of a JSONL stream. Blank lines and lines
// starting with '#' are skipped.
type Decoder struct {
	reader  *bufio.Reader
	pending []byte
	follow  bool
	line    int
	conv    converter
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{reader: bufio.NewReader(r)}
}

// Follow keeps an unterminated last line pending at end of input so a
// later Next can complete it once more data has been appended.
func (d *Decoder) Follow() *Decoder {
	d.follow = true
	return d
}

// Next returns the steps of the next non-empty line, or io.EOF once the
// input is exhausted. A tick line with a repeat count yields several steps.
// After io.EOF, Next may be called again to pick up appended lines.
func (d *Decoder) Next() ([]Step, error) {
	for {
		chunk, err := d.reader.ReadBytes('\n')
		d.pending = append(d.pending, chunk...)
		if len(d.pending) > maxLineBytes {
			return nil, fmt.Errorf("line %d: %w", d.line+1, bufio.ErrTooLong)
		}

		switch {
		case errors.Is(err, io.EOF):
			if len(d.pending) == 0 || d.follow {
				return nil, io.EOF
			}
		case err != nil:
			return nil, fmt.Errorf("read event stream: %w", err)
		}

		line := bytes.TrimSpace(d.pending)
		d.pending = nil
		d.line++
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		return d.decodeLine(line)
	}
}

func (d *Decoder) decodeLine(line []byte) ([]Step, error) {
	var raw stepSchema
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: decode step: %w", d.line, err)
	}

	steps, err := d.conv.convert(raw)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", d.line, err)
	}

	return steps, nil
}

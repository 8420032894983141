// ABOUTME: JSON string-list codec for slots such as command history
// ABOUTME: Uses easyjson's lexer and writer directly; malformed input is reported, never partially applied

package store

import (
	"errors"
	"fmt"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// EncodeStrings renders list as a JSON array of strings.
func EncodeStrings(list []string) []byte {
	var w jwriter.Writer
	w.RawByte('[')
	for i, s := range list {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(s)
	}
	w.RawByte(']')
	out, _ := w.BuildBytes()
	return out
}

// DecodeStrings parses a JSON array of strings. null decodes to nil.
func DecodeStrings(data []byte) ([]string, error) {
	in := jlexer.Lexer{Data: data}
	if in.IsNull() {
		in.Skip()
		in.Consumed()
		return nil, in.Error()
	}
	var out []string
	in.Delim('[')
	for !in.IsDelim(']') {
		out = append(out, in.String())
		in.WantComma()
	}
	in.Delim(']')
	in.Consumed()
	if err := in.Error(); err != nil {
		return nil, fmt.Errorf("decoding string list: %w", err)
	}
	return out, nil
}

// LoadStrings reads a string list from slot name. A missing slot yields nil
// without error.
func LoadStrings(s Slots, name string) ([]string, error) {
	data, err := s.Load(name)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeStrings(data)
}

// SaveStrings writes list to slot name.
func SaveStrings(s Slots, name string, list []string) error {
	return s.Save(name, EncodeStrings(list))
}

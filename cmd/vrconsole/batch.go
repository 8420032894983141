// ABOUTME: Non-interactive mode: evaluates stdin line by line and prints what the console logged
// ABOUTME: Used when stdin is not a terminal or --batch is given

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// runBatch submits each non-empty line of r and writes the resulting
// scrollback rows to w. Lines have no length limit.
func runBatch(h *host, r io.Reader, w io.Writer) error {
	c := h.console
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if expr := strings.TrimSpace(line); expr != "" {
			c.SetInput(expr)
			c.Submit()
			c.Loop().Drain()

			for _, row := range c.Scrollback().Rows() {
				if _, werr := fmt.Fprintln(w, row.Text); werr != nil {
					return werr
				}
			}
			c.Clear()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

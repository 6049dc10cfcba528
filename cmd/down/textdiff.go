package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff diffs a and b line by line.
func lineDiff(a, b string) []diffpatch.Diff {
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ac, bc, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

func differs(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// writeLineDiff writes diffs with a unified style header, prefixing each
// line with its operation.
func writeLineDiff(w io.Writer, from, to string, diffs []diffpatch.Diff, colored bool) error {
	del, ins := fmt.Sprint, fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		ins = color.New(color.FgGreen).Sprint
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "--- %s\n+++ %s\n", from, to)
	for i := range diffs {
		d := &diffs[i]
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			switch d.Type {
			case diffpatch.DiffDelete:
				b.WriteString(del("-" + line))
			case diffpatch.DiffInsert:
				b.WriteString(ins("+" + line))
			default:
				b.WriteString(" " + line)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

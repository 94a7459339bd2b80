package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const hexdumpWidth = 16

// hexdump renders data starting at file offset, bytes with mark set are
// highlighted.
func hexdump(offset int, data []byte, mark []bool) string {
	var result strings.Builder
	red := color.New(color.FgRed, color.Bold)

	for len(data) > 0 {
		l := len(data)
		if l > hexdumpWidth {
			l = hexdumpWidth
		}
		work := data[:l]
		data = data[l:]
		var workMark []bool
		if mark != nil {
			workMark = mark[:l]
			mark = mark[l:]
		}

		var workHex string
		var workAscii string
		for i := 0; i < hexdumpWidth; i++ {
			if i >= len(work) {
				workHex += "   "
				workAscii += " "
			} else {
				m := work[i]
				delta := workMark != nil && workMark[i]

				h := fmt.Sprintf("%02x ", m)
				if m < 32 || m > 126 {
					m = '.'
				}
				a := string(rune(m))

				if delta {
					h = red.Sprint(h)
					a = red.Sprint(a)
				}
				workHex += h
				workAscii += a
			}
			if i%8 == 7 {
				workHex += " "
			}
		}

		fmt.Fprintf(&result, "%08x  %s|%s|\n", offset, workHex, workAscii)
		offset += l
	}

	return result.String()
}

// dumpWindow returns the line aligned region of about size bytes around
// center.
func dumpWindow(buf []byte, center, size int) (int, []byte) {
	if size < 0 {
		size = 0
	}
	start := center - size/2
	if start < 0 {
		start = 0
	}
	start -= start % hexdumpWidth

	end := start + size
	if end > len(buf) {
		end = len(buf)
	}
	if start > end {
		start = end
	}
	return start, buf[start:end]
}

package logtail

import (
	"bytes"
	"fmt"
	"os"
)

// History returns up to maxLines from the end of the logfile at path, in
// file order, plus the byte offset of the last complete line consumed.
// maxLines <= 0 means the whole file. A trailing line with no newline yet
// is excluded; the returned offset lets a follow-up reader pick it up once
// it completes, so nothing written between a read and a watch is lost.
// A missing file surfaces as an error wrapping os.ErrNotExist so the
// caller can substitute its placeholder message.
func History(path string, maxLines int) ([]string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open logfile: %w", err)
	}

	var lines []string
	var offset int64
	rest := data
	for {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, string(bytes.TrimSuffix(rest[:idx], []byte("\r"))))
		rest = rest[idx+1:]
		offset += int64(idx) + 1
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, offset, nil
}

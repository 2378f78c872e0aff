package app

import (
	"os"
)

// appendLogLine appends one line to a plain text job log. The files are
// append-only event logs with fixed legacy line formats, distinct from
// the structured application log.
func appendLogLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var readPassword = term.ReadPassword

// readLine returns the next line without its line ending. A final line with
// no newline is returned as is; io.EOF is only reported for empty input.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText asks for one line of input:
//
//	Email
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo. The caller
// wipes the returned slice.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return pw, err
}

// GetMultiline collects lines until an empty line or the end of input.
// Inner blank lines cannot be entered; surrounding space is trimmed.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s (empty line to finish)\n", prompt); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := readLine(reader)
		if err != nil || line == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(b.String()), nil
}

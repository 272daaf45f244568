package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything other than y or yes, including EOF, is a no.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, WarningStyle.Render(question+" [y/N] "))

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	// The read cannot be interrupted; on cancellation it is abandoned.
	go func() {
		value, err := bufio.NewReader(in).ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return false, res.err
		}
		switch strings.ToLower(strings.TrimSpace(res.value)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

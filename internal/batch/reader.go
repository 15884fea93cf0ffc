package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretha12/MoGrow/internal/models"
	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

// InputRecord is one non-empty input line. Error is set when the line could
// not be decoded.
type InputRecord struct {
	Request    models.DecisionRequest
	LineNumber int
	Error      error
}

type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll streams records until the input ends or ctx is cancelled. Blank
// lines are skipped but still counted.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		line := 0
		for scanner.Scan() {
			line++
			text := bytes.TrimSpace(scanner.Bytes())
			if len(text) == 0 {
				continue
			}

			record := InputRecord{LineNumber: line}
			if err := json.Unmarshal(text, &record.Request); err != nil {
				record.Error = fmt.Errorf("line %d: %w", line, err)
				r.logger.Warn().Err(err).Int("line", line).Msg("Failed to parse record")
			} else if record.Request.RequestID == "" {
				record.Request.RequestID = fmt.Sprintf("line-%d", line)
			}

			select {
			case out <- record:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Int("line", line).Msg("Failed to read input")
			select {
			case out <- InputRecord{LineNumber: line + 1, Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}

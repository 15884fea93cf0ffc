package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"
)

const (
	FormatJSONL   = "jsonl"
	FormatSummary = "summary"
)

// Summary counts outcomes. It is written once, when the writer is closed.
type Summary struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Labels    map[string]int `json:"labels"`
	Sources   map[string]int `json:"sources"`
	Rules     map[string]int `json:"rules,omitempty"`
	Errors    []LineError    `json:"errors,omitempty"`
}

type LineError struct {
	LineNumber int    `json:"line"`
	RequestID  string `json:"request_id,omitempty"`
	Error      string `json:"error"`
}

func NewSummary() *Summary {
	return &Summary{
		Labels:  map[string]int{},
		Sources: map[string]int{},
		Rules:   map[string]int{},
	}
}

func (s *Summary) Add(record OutputRecord) {
	s.Total++
	if record.Result == nil {
		s.Failed++
		s.Errors = append(s.Errors, LineError{
			LineNumber: record.LineNumber,
			RequestID:  record.RequestID,
			Error:      record.Error,
		})
		return
	}

	s.Succeeded++
	result := record.Result
	s.Labels[string(result.Subject)+"/"+result.LabelName]++
	s.Sources[string(result.Source)]++
	if result.Rule != "" {
		s.Rules[result.RuleSet+"/"+result.Rule]++
	}
}

type Writer struct {
	out     io.Writer
	format  string
	encoder *json.Encoder
	summary *Summary
	logger  *zerolog.Logger
}

func NewWriter(out io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	if format != FormatJSONL && format != FormatSummary {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Writer{
		out:     out,
		format:  format,
		encoder: json.NewEncoder(out),
		summary: NewSummary(),
		logger:  logger,
	}, nil
}

func (w *Writer) Write(record OutputRecord) error {
	w.summary.Add(record)
	if w.format == FormatJSONL {
		return w.encoder.Encode(record)
	}
	return nil
}

func (w *Writer) Summary() *Summary {
	return w.summary
}

// Close flushes the summary in summary format. Errors are listed by line.
func (w *Writer) Close() error {
	w.logger.Info().
		Int("total", w.summary.Total).
		Int("succeeded", w.summary.Succeeded).
		Int("failed", w.summary.Failed).
		Msg("Batch output closed")

	if w.format != FormatSummary {
		return nil
	}
	return WriteSummary(w.out, w.summary)
}

func WriteSummary(out io.Writer, summary *Summary) error {
	sort.Slice(summary.Errors, func(i, j int) bool {
		return summary.Errors[i].LineNumber < summary.Errors[j].LineNumber
	})
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

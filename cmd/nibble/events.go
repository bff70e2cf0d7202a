package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/nibble/internal/config"
)

// eventRecord mirrors otel.Event for JSON decoding. Lines written by older
// builds still decode since unknown fields are ignored.
type eventRecord struct {
	Time      time.Time      `json:"t"`
	Level     string         `json:"level"`
	Kind      string         `json:"kind"`
	Comp      string         `json:"comp"`
	SessionID string         `json:"session_id"`
	QueryID   string         `json:"qid"`
	Term      string         `json:"term"`
	DurMs     float64        `json:"dur_ms"`
	Count     int            `json:"count"`
	Err       string         `json:"err"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra"`
}

type eventFilter struct {
	kind     string
	level    string
	comp     string
	qid      string
	session  string
	minLevel int
}

// levelRank returns a numeric rank for filtering (higher = more severe).
func levelRank(level string) int {
	switch level {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn":
		return 2
	case "error":
		return 3
	default:
		return 0
	}
}

func (f eventFilter) match(ev eventRecord) bool {
	if f.kind != "" && !strings.HasPrefix(ev.Kind, f.kind) {
		return false
	}
	if f.level != "" && levelRank(ev.Level) < f.minLevel {
		return false
	}
	if f.comp != "" && ev.Comp != f.comp {
		return false
	}
	if f.qid != "" && ev.QueryID != f.qid {
		return false
	}
	if f.session != "" && ev.SessionID != f.session {
		return false
	}
	return true
}

func eventsCmd() *cobra.Command {
	var (
		tail    int
		follow  bool
		rawJSON bool
		filter  eventFilter
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the picker's event log",
		Long: `Show recent lines of ~/.nibble/events.jsonl.

A query id (qid) ties the debounce, request and response events of one
search together, and matches the X-Request-ID nibbled logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := eventLogPath(config.DataDir())
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("event log not found at %s (run nibble first): %w", path, err)
			}
			defer f.Close()

			filter.minLevel = levelRank(filter.level)
			out := cmd.OutOrStdout()

			for _, l := range readTailLines(f, tail, filter.match) {
				fmt.Fprintln(out, formatEvent(l.ev, l.raw, rawJSON))
			}
			if !follow {
				return nil
			}

			reader := bufio.NewReader(f)
			for {
				line, err := reader.ReadBytes('\n')
				if err != nil {
					if err == io.EOF {
						select {
						case <-cmd.Context().Done():
							return nil
						case <-time.After(100 * time.Millisecond):
						}
						continue
					}
					return err
				}
				line = trimLine(line)
				if len(line) == 0 {
					continue
				}
				var ev eventRecord
				if json.Unmarshal(line, &ev) != nil {
					continue
				}
				if filter.match(ev) {
					fmt.Fprintln(out, formatEvent(ev, line, rawJSON))
				}
			}
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&tail, "tail", "n", 50, "number of recent lines to show")
	fs.BoolVarP(&follow, "follow", "f", false, "keep printing new events")
	fs.StringVar(&filter.kind, "kind", "", "filter by event kind prefix (e.g. 'search')")
	fs.StringVar(&filter.level, "level", "", "minimum level: debug, info, warn, error")
	fs.StringVar(&filter.comp, "comp", "", "filter by component name")
	fs.StringVar(&filter.qid, "qid", "", "filter by query ID")
	fs.StringVar(&filter.session, "session", "", "filter by session ID")
	fs.BoolVar(&rawJSON, "json", false, "output raw JSON lines")
	return cmd
}

func formatEvent(ev eventRecord, raw []byte, rawJSON bool) string {
	if rawJSON {
		return string(raw)
	}
	ts := ev.Time.Format("15:04:05.000")
	lvl := strings.ToUpper(ev.Level)
	if lvl == "" {
		lvl = "?"
	}

	parts := []string{fmt.Sprintf("%s %-5s [%-10s] %-16s", ts, lvl, ev.Comp, ev.Kind)}

	if ev.QueryID != "" {
		parts = append(parts, "qid="+ev.QueryID)
	}
	if ev.Term != "" {
		parts = append(parts, fmt.Sprintf("term=%q", ev.Term))
	}
	if ev.Msg != "" {
		parts = append(parts, "- "+ev.Msg)
	}
	if ev.DurMs > 0 {
		parts = append(parts, fmt.Sprintf("(%.*fms)", durPrecision(ev.DurMs), ev.DurMs))
	}
	if ev.Count > 0 {
		parts = append(parts, fmt.Sprintf("n=%d", ev.Count))
	}
	if ev.Err != "" {
		parts = append(parts, "err="+ev.Err)
	}

	return strings.Join(parts, " ")
}

type parsedLine struct {
	ev  eventRecord
	raw []byte
}

// readTailLines consumes r and returns the last n lines matching the filter.
func readTailLines(r io.Reader, n int, match func(eventRecord) bool) []parsedLine {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)

	var ring []parsedLine
	if n > 0 {
		ring = make([]parsedLine, 0, n)
	}

	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var ev eventRecord
		if json.Unmarshal(raw, &ev) != nil {
			continue
		}
		if n <= 0 || !match(ev) {
			continue
		}
		// scanner reuses its buffer
		rawCopy := make([]byte, len(raw))
		copy(rawCopy, raw)

		if len(ring) < n {
			ring = append(ring, parsedLine{ev: ev, raw: rawCopy})
		} else {
			copy(ring, ring[1:])
			ring[n-1] = parsedLine{ev: ev, raw: rawCopy}
		}
	}

	return ring
}

func trimLine(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func durPrecision(ms float64) int {
	if ms >= 100 {
		return 0
	}
	if ms >= 1 {
		return 1
	}
	return 2
}

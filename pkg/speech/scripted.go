package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// InterimPrefix marks an interim hypothesis in a script line.
const InterimPrefix = "~ "

// Scripted replays a fixed sequence of segments, one every Delay.
// It stands in for a microphone in the CLI's --script mode and in tests.
type Scripted struct {
	Segments []Segment
	Delay    time.Duration
	Err      error // Reported after the last segment, if set.
}

// ParseScript reads one segment per line. Lines starting with InterimPrefix are interim;
// all others are final. Final lines keep a trailing space so cumulative text reads naturally.
// Blank lines are skipped.
func ParseScript(r io.Reader) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if text, ok := strings.CutPrefix(line, InterimPrefix); ok {
			segments = append(segments, Segment{Text: text})
			continue
		}
		segments = append(segments, Segment{Text: line + " ", Final: true})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return segments, nil
}

func (s *Scripted) Available() bool { return s != nil }

func (s *Scripted) Start(ctx context.Context, cfg Config, h Handlers) (Session, error) {
	segments := append([]Segment(nil), s.Segments...)
	delay, tail := s.Delay, s.Err

	return startSession(ctx, cfg, h, func(ctx context.Context, emit emitFunc) error {
		for _, seg := range segments {
			if delay > 0 {
				t := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					t.Stop()
					return ctx.Err()
				case <-t.C:
				}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			emit(seg)
		}
		return tail
	}), nil
}

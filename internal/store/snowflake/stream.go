package snowflake

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sextant-data/sextant/core/asset"
)

const streamBuffer = 64

// rowEvent is one delivery on a row stream: a row, or the terminal error.
// End of stream is the channel closing with no error event.
type rowEvent struct {
	row asset.SampleRow
	err error
}

// streamRows adapts the driver cursor into a push-style stream: scanned
// rows are produced in order onto a bounded channel and the channel is
// closed on end. A scan or cursor error terminates the stream with a final
// error event. Consumers must drain the channel.
func streamRows(ctx context.Context, rows *sqlx.Rows) <-chan rowEvent {
	events := make(chan rowEvent, streamBuffer)
	go func() {
		defer close(events)
		for rows.Next() {
			if err := ctx.Err(); err != nil {
				events <- rowEvent{err: err}
				return
			}

			row := asset.SampleRow{}
			if err := rows.MapScan(row); err != nil {
				events <- rowEvent{err: err}
				return
			}
			for k, v := range row {
				row[k] = normalizeValue(v)
			}
			events <- rowEvent{row: row}
		}
		if err := rows.Err(); err != nil {
			events <- rowEvent{err: err}
		}
	}()
	return events
}

// collectRows drains one stream into a single buffered result and resolves
// only on end-of-stream. A mid-stream error surfaces as StreamError and
// the partial rows are discarded, never returned as a complete result.
func collectRows(ctx context.Context, rows *sqlx.Rows, op string) ([]asset.SampleRow, error) {
	defer rows.Close()

	var out []asset.SampleRow
	var streamErr error
	for ev := range streamRows(ctx, rows) {
		if ev.err != nil {
			streamErr = asset.StreamError{Op: op, Received: len(out), Err: ev.err}
			continue
		}
		out = append(out, ev.row)
	}
	if streamErr != nil {
		return nil, streamErr
	}
	return out, nil
}

// normalizeValue converts driver-native values at the boundary: native
// timestamps become ISO-8601 strings, raw byte columns become text.
func normalizeValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC().Format(time.RFC3339)
	case []byte:
		return string(tv)
	default:
		return v
	}
}

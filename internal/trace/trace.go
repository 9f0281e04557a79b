// Package trace renders an rtsim.EventContainer for external tooling: a
// per-tick raw string for stdout, and a CSV dump for downstream analysis.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rtsched/tickrts/internal/rtsim"
)

// RenderRaw renders the container as the spec's per-tick textual format:
// for every event of duration d = end-begin, d copies of the task's ID,
// all comma-space joined across the whole container.
func RenderRaw(c *rtsim.EventContainer) string {
	var ids []string
	for _, e := range c.Events() {
		id := strconv.FormatInt(int64(e.Task.ID), 10)
		for i := e.Begin; i < e.End; i++ {
			ids = append(ids, id)
		}
	}
	return strings.Join(ids, ", ")
}

var csvHeader = []string{
	"begin", "end", "task_id", "job_initial_release_time",
	"begin_state", "end_state", "note", "run_id",
}

// WriteCSV writes one header row plus one row per event to w.
func WriteCSV(c *rtsim.EventContainer, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("trace: writing csv header: %w", err)
	}

	for _, e := range c.Events() {
		record := []string{
			strconv.FormatInt(e.Begin, 10),
			strconv.FormatInt(e.End, 10),
			strconv.FormatInt(int64(e.Task.ID), 10),
			strconv.FormatInt(e.JobInitialReleaseTime, 10),
			e.BeginState.String(),
			e.EndState.String(),
			e.Note,
			c.RunID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("trace: writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

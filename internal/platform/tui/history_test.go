package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-life/internal/storage"
)

func TestRenderHistoryEmpty(t *testing.T) {
	out := RenderHistory(nil, &storage.Stats{})

	assert.Contains(t, out, "No sessions recorded yet.")
	assert.Contains(t, out, "sessions 0")
	assert.NotContains(t, out, "last ")
}

func TestRenderHistory(t *testing.T) {
	ended := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	sessions := []storage.Session{
		{User: "alice", Commands: 12, Generations: 40, Columns: 20, Rows: 10, Population: 7, EndedAt: ended},
		{Commands: 1, EndedAt: ended.Add(-time.Hour)},
	}
	stats := &storage.Stats{Sessions: 2, TotalCommands: 13, MaxGenerations: 40, AvgPopulation: 3.5, LastSession: ended}

	out := RenderHistory(sessions, stats)

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "20x10")
	assert.Contains(t, out, "commands 13")
	assert.Contains(t, out, "longest run 40 generations")
	assert.Contains(t, out, "avg population 3.5")
	assert.Contains(t, out, "last "+ended.Local().Format(historyDateLayout))
}

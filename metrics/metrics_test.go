package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts under concurrent use", func(t *testing.T) {
		c := NewCollector()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddCommand()
				c.AddRoomCreated()
				c.AddAIMove()
			}()
		}
		wg.Wait()
		c.AddParseError()
		c.AddRoomsRemoved(3)
		c.AddGameFinished()

		got := c.Complete()

		require.Equal(t, 50, got.Commands, "Should count every command")
		require.Equal(t, 50, got.RoomsCreated)
		require.Equal(t, 50, got.AIMoves)
		require.Equal(t, 1, got.ParseErrors)
		require.Equal(t, 3, got.RoomsRemoved)
		require.Equal(t, 1, got.GamesFinished)
		require.True(t, got.Uptime > 0, "Uptime should be measured")
	})

	t.Run("dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.AddCommand()

		require.Equal(t, ServerMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	w, err := NewWriter(dir)
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := GameRecord{
		Room:       4,
		Name:       "!alice",
		Kind:       "SinglePlayer",
		Difficulty: "Easy",
		GameMetric: GameMetric{
			Winner:     "TrapperPlayer",
			StartTime:  start,
			EndTime:    start.Add(90 * time.Second),
			Duration:   90 * time.Second,
			TotalMoves: 12,
		},
	}

	require.NoError(t, w.WriteGameRecords([]GameRecord{record}))
	require.NoError(t, w.WriteGameRecords(nil))
	require.NoError(t, w.WriteGameRecords([]GameRecord{record}))

	f, err := os.Open(w.Path())
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3, "Header should be written once")
	require.Equal(t, "room", rows[0][0])
	require.Equal(t, []string{
		"4", "!alice", "SinglePlayer", "Easy", "TrapperPlayer",
		"2024-05-01T12:00:00Z", "2024-05-01T12:01:30Z", "1m30s", "12",
	}, rows[1])
	require.Equal(t, rows[1], rows[2])
}

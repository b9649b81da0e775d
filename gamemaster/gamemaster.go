package gamemaster

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"trapmouse/agent"
	"trapmouse/communication"
	"trapmouse/game"
	"trapmouse/metrics"
)

// Reply is the line sent back for a command. NoReply sends nothing.
type Reply string

const NoReply Reply = ""

// Recorder stores finished games.
type Recorder interface {
	WriteGameRecords(records []metrics.GameRecord) error
}

// GameMaster owns the registry and runs every command under one lock.
type GameMaster struct {
	mu       sync.Mutex
	registry *Registry
	finished []metrics.GameRecord // guarded by mu, drained after each command

	rng      game.Rand
	metrics  metrics.Collector
	recorder Recorder
}

type Option func(*GameMaster)

// WithRand seeds walls and AI choices from rng.
func WithRand(rng game.Rand) Option {
	return func(gm *GameMaster) {
		if rng != nil {
			gm.rng = rng
		}
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(gm *GameMaster) {
		if c != nil {
			gm.metrics = c
		}
	}
}

// WithRecorder stores a record of every game that reaches GameOver.
func WithRecorder(r Recorder) Option {
	return func(gm *GameMaster) {
		gm.recorder = r
	}
}

func New(opts ...Option) *GameMaster {
	gm := &GameMaster{
		registry: NewRegistry(),
		rng:      game.DefaultRand,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(gm)
	}
	return gm
}

// HandleLine parses one frame and executes it. A line that fails to parse
// is answered with an ERR reply and changes nothing.
func (gm *GameMaster) HandleLine(line string) Reply {
	cmd, err := communication.Parse(line)
	if err != nil {
		gm.metrics.AddParseError()
		log.Debug().Err(err).Msg("Rejected command")
		return Reply("ERR " + err.Error())
	}
	return gm.Execute(cmd)
}

// Execute applies cmd atomically. Logical failures are logged and produce no
// reply, except AI failures a single-player client has to know about.
func (gm *GameMaster) Execute(cmd communication.Command) Reply {
	gm.metrics.AddCommand()

	gm.mu.Lock()
	reply, err := gm.apply(cmd)
	finished := gm.finished
	gm.finished = nil
	gm.mu.Unlock()

	gm.record(finished)

	if err != nil {
		log.Warn().Err(err).Str("command", cmd.Name()).Msg("Command failed")
		for _, aiErr := range []error{agent.ErrUnimplemented, agent.ErrNoDifficulty} {
			if errors.Is(err, aiErr) {
				return Reply("ERR ai: " + aiErr.Error())
			}
		}
	}
	return reply
}

// Snapshot returns a copy of every live room.
func (gm *GameMaster) Snapshot() game.Snapshot {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.registry.Snapshot()
}

// Metrics reports the counters collected so far.
func (gm *GameMaster) Metrics() metrics.ServerMetric {
	return gm.metrics.Complete()
}

// finish ends the game in room and queues its record. Rooms already over
// are only updated.
func (gm *GameMaster) finish(room *game.Room, winner *game.Turn) {
	wasOver := room.State == game.GameOver
	room.MarkGameOver(winner)
	if !wasOver {
		gm.queueRecord(room)
	}
}

func (gm *GameMaster) queueRecord(room *game.Room) {
	gm.metrics.AddGameFinished()

	end := time.Now().UTC()
	record := metrics.GameRecord{
		Room: room.ID,
		Name: room.Name,
		Kind: string(room.Kind),
		GameMetric: metrics.GameMetric{
			StartTime:  room.CreatedAt,
			EndTime:    end,
			Duration:   end.Sub(room.CreatedAt),
			TotalMoves: room.Moves,
		},
	}
	if room.Difficulty != nil {
		record.Difficulty = string(*room.Difficulty)
	}
	if room.Winner != nil {
		record.Winner = string(*room.Winner)
	}
	gm.finished = append(gm.finished, record)
}

func (gm *GameMaster) record(records []metrics.GameRecord) {
	if gm.recorder == nil || len(records) == 0 {
		return
	}
	if err := gm.recorder.WriteGameRecords(records); err != nil {
		log.Error().Err(err).Msg("Failed to write game records")
	}
}

package metrics

import (
	"sync/atomic"
	"time"
)

type ServerMetric struct {
	Uptime        time.Duration
	Commands      int
	ParseErrors   int
	RoomsCreated  int
	RoomsRemoved  int
	GamesFinished int
	AIMoves       int
}

type GameMetric struct {
	Winner     string // empty for an abandoned game
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	AddCommand()
	AddParseError()
	AddRoomCreated()
	AddRoomsRemoved(n int)
	AddGameFinished()
	AddAIMove()
	Complete() ServerMetric
}

type collector struct {
	startTime     time.Time
	commands      atomic.Int64
	parseErrors   atomic.Int64
	roomsCreated  atomic.Int64
	roomsRemoved  atomic.Int64
	gamesFinished atomic.Int64
	aiMoves       atomic.Int64
}

func NewCollector() Collector {
	return &collector{startTime: time.Now()}
}

func (m *collector) AddCommand() {
	m.commands.Add(1)
}

func (m *collector) AddParseError() {
	m.parseErrors.Add(1)
}

func (m *collector) AddRoomCreated() {
	m.roomsCreated.Add(1)
}

func (m *collector) AddRoomsRemoved(n int) {
	m.roomsRemoved.Add(int64(n))
}

func (m *collector) AddGameFinished() {
	m.gamesFinished.Add(1)
}

func (m *collector) AddAIMove() {
	m.aiMoves.Add(1)
}

func (m *collector) Complete() ServerMetric {
	return ServerMetric{
		Uptime:        time.Since(m.startTime),
		Commands:      int(m.commands.Load()),
		ParseErrors:   int(m.parseErrors.Load()),
		RoomsCreated:  int(m.roomsCreated.Load()),
		RoomsRemoved:  int(m.roomsRemoved.Load()),
		GamesFinished: int(m.gamesFinished.Load()),
		AIMoves:       int(m.aiMoves.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) AddCommand()            {}
func (m *dummyCollector) AddParseError()         {}
func (m *dummyCollector) AddRoomCreated()        {}
func (m *dummyCollector) AddRoomsRemoved(n int)  {}
func (m *dummyCollector) AddGameFinished()       {}
func (m *dummyCollector) AddAIMove()             {}
func (m *dummyCollector) Complete() ServerMetric { return ServerMetric{} }

package stats

import "sync"

// Memory is a process-local backend. It is the fallback when nothing on
// disk can be opened.
type Memory struct {
	mu    sync.Mutex
	table Table
	games []GameRecord
}

// NewMemory returns an empty memory backend.
func NewMemory() *Memory {
	return &Memory{table: DefaultTable()}
}

func (m *Memory) ReadAll() (Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Clone(), nil
}

func (m *Memory) WriteAll(t Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = t.Clone()
	return nil
}

func (m *Memory) AppendGame(g GameRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, g)
	return nil
}

// Games returns the journaled games, oldest first.
func (m *Memory) Games() []GameRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GameRecord(nil), m.games...)
}

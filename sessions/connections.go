package sessions

// Conn is the canonical live-channel abstraction both the protocol
// dispatcher and the transport adapter implement against. Send encodes
// and writes one message; implementations must be safe for concurrent
// Send calls.
type Conn interface {
	Send(v any) error
	Close() error
}

// AddConnection registers a live connection with a room.
func (m *Manager) AddConnection(roomID string, c Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.connections[roomID]
	if !ok {
		set = make(map[Conn]struct{})
		m.connections[roomID] = set
	}
	set[c] = struct{}{}
}

// RemoveConnection drops a connection from a room. Removing an absent
// connection is a no-op.
func (m *Manager) RemoveConnection(roomID string, c Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.connections[roomID]; ok {
		delete(set, c)
	}
}

// Broadcast sends msg to every connection currently in the room,
// best-effort: one dead peer never blocks the rest.
func (m *Manager) Broadcast(roomID string, msg any) {
	m.mu.Lock()
	conns := m.connSnapshot(roomID)
	m.mu.Unlock()
	m.sendEach(conns, msg)
}

// connSnapshot copies a room's connection set so sends happen outside
// the lock. Caller must hold m.mu.
func (m *Manager) connSnapshot(roomID string) []Conn {
	set := m.connections[roomID]
	conns := make([]Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	return conns
}

func (m *Manager) sendEach(conns []Conn, msg any) {
	for _, c := range conns {
		if err := c.Send(msg); err != nil {
			m.log.Warn("broadcast send failed", "error", err)
		}
	}
}

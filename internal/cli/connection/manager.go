// Package connection provides connection management for the FerroDB CLI.
package connection

// Manager tracks the CLI's current connection to a FerroDB server.
type Manager struct {
	current *Connection
}

// Connection identifies a FerroDB server endpoint.
type Connection struct {
	Name   string
	Server string
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect sets conn as the current connection.
func (m *Manager) Connect(conn *Connection) error {
	m.current = conn
	return nil
}

// Disconnect clears the current connection.
func (m *Manager) Disconnect() {
	m.current = nil
}

// Current returns the current connection, or nil if none.
func (m *Manager) Current() *Connection {
	return m.current
}

// IsConnected reports whether a connection is active.
func (m *Manager) IsConnected() bool {
	return m.current != nil
}

package object

// MaxActiveGhosts is the most ghosts that may exist at once.
const MaxActiveGhosts = 4

// GhostManager owns the population limits shared by every ghost of one
// session: the active count and the single possession slot.
type GhostManager struct {
	ghosts    []*Ghost
	possessor *Ghost
}

// NewGhostManager returns an empty manager.
func NewGhostManager() *GhostManager {
	return &GhostManager{}
}

// Active returns the number of live ghosts.
func (m *GhostManager) Active() int {
	return len(m.ghosts)
}

// Ghosts returns the live ghosts. The slice must not be modified.
func (m *GhostManager) Ghosts() []*Ghost {
	return m.ghosts
}

// CanSpawn reports whether another ghost fits under the limit.
func (m *GhostManager) CanSpawn() bool {
	return len(m.ghosts) < MaxActiveGhosts
}

// Acquire reserves an active slot for g. It fails when the limit is reached.
func (m *GhostManager) Acquire(g *Ghost) bool {
	if !m.CanSpawn() {
		return false
	}
	m.ghosts = append(m.ghosts, g)
	return true
}

// Release removes a finished ghost and frees the possession slot if it held it.
func (m *GhostManager) Release(g *Ghost) {
	for i, other := range m.ghosts {
		if other == g {
			m.ghosts = append(m.ghosts[:i], m.ghosts[i+1:]...)
			break
		}
	}
	if m.possessor == g {
		m.possessor = nil
	}
}

// Possessor returns the ghost holding the ball, or nil.
func (m *GhostManager) Possessor() *Ghost {
	return m.possessor
}

// TryPossess claims the possession slot for g.
func (m *GhostManager) TryPossess(g *Ghost) bool {
	if m.possessor != nil && m.possessor != g {
		return false
	}
	m.possessor = g
	return true
}

// releasePossession frees the slot if g holds it.
func (m *GhostManager) releasePossession(g *Ghost) {
	if m.possessor == g {
		m.possessor = nil
	}
}

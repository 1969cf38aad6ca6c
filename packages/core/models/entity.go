package models

// Entity is implemented by every persisted model so stores can manage ids
// without reflection.
type Entity interface {
	GetID() uint
	SetID(id uint)
}

func (t *Team) GetID() uint { return t.ID }
func (t *Team) SetID(id uint) { t.ID = id }
func (p *Player) GetID() uint { return p.ID }
func (p *Player) SetID(id uint) { p.ID = id }
func (m *Match) GetID() uint { return m.ID }
func (m *Match) SetID(id uint) { m.ID = id }
func (g *Goal) GetID() uint { return g.ID }
func (g *Goal) SetID(id uint) { g.ID = id }
func (a *Assist) GetID() uint { return a.ID }
func (a *Assist) SetID(id uint) { a.ID = id }
func (c *Card) GetID() uint { return c.ID }
func (c *Card) SetID(id uint) { c.ID = id }
func (s *Season) GetID() uint { return s.ID }
func (s *Season) SetID(id uint) { s.ID = id }
func (ms *MatchSeason) GetID() uint { return ms.ID }
func (ms *MatchSeason) SetID(id uint) { ms.ID = id }
func (n *News) GetID() uint { return n.ID }
func (n *News) SetID(id uint) { n.ID = id }

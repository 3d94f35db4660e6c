//go:build headless

package audio

// Player is a silent beeper for builds without audio support.
type Player struct {
	*Tone
}

// New returns a silent beeper.
func New(frequency int) (*Player, error) {
	return &Player{Tone: NewTone(frequency)}, nil
}

// Close does nothing.
func (p *Player) Close() error {
	return nil
}

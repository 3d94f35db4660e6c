//go:build !headless

package audio

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Player outputs the tone using the system audio device.
type Player struct {
	*Tone

	ctx    *oto.Context
	player *oto.Player
}

// New opens the audio device and starts playback of a silent tone stream.
func New(frequency int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone(frequency)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Player{
		Tone:   tone,
		ctx:    ctx,
		player: player,
	}, nil
}

// Close stops the playback.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

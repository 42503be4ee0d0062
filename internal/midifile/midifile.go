// Package midifile renders generated instrument events as a standard MIDI file.
package midifile

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/yrbane/acidgrid/internal/engine"
	"github.com/yrbane/acidgrid/internal/timesig"
)

// ticksPerBeat is the file resolution in pulses per quarter note.
const ticksPerBeat = 480

// drumGateTicks is the fixed gate between a drum hit and its note-off.
const drumGateTicks = 5

// General MIDI programs for the melodic roles.
const (
	ProgramBassline uint8 = 38
	ProgramSubBass  uint8 = 39
	ProgramAccomp   uint8 = 90
	ProgramLead     uint8 = 81
)

// Channel assignments. Each melodic role gets its own channel so the
// program changes stay independent. Drums use the GM percussion channel.
const (
	ChannelBassline uint8 = 0
	ChannelSubBass  uint8 = 1
	ChannelAccomp   uint8 = 2
	ChannelLead     uint8 = 3
	ChannelDrums    uint8 = 9
)

// trackMode selects how a flat event list becomes note messages.
type trackMode int

const (
	// modeDrums emits percussion hits with a fixed short note-off.
	modeDrums trackMode = iota
	// modeMelodic synthesizes note-offs from each note's register and velocity.
	modeMelodic
	// modePaired treats events as alternating note-on/note-off pairs where
	// the off carries its own release velocity.
	modePaired
)

type track struct {
	name       string
	mode       trackMode
	channel    uint8
	program    uint8
	hasProgram bool
	events     []engine.Event
}

// Composer assembles named instrument tracks into a multi-track MIDI file.
type Composer struct {
	tempo  int
	meter  timesig.TimeSignature
	tracks []track
}

// NewComposer creates a composer for the given tempo in BPM and meter.
func NewComposer(tempo int, meter timesig.TimeSignature) *Composer {
	return &Composer{tempo: tempo, meter: meter}
}

// AddDrumTrack adds a percussion track on the GM drum channel.
func (c *Composer) AddDrumTrack(name string, events []engine.Event) {
	c.tracks = append(c.tracks, track{
		name:    name,
		mode:    modeDrums,
		channel: ChannelDrums,
		events:  events,
	})
}

// AddMelodicTrack adds a pitched track whose note lengths are synthesized
// from each note's register and velocity.
func (c *Composer) AddMelodicTrack(name string, channel, program uint8, events []engine.Event) {
	c.tracks = append(c.tracks, track{
		name:       name,
		mode:       modeMelodic,
		channel:    channel,
		program:    program,
		hasProgram: true,
		events:     events,
	})
}

// AddPairedTrack adds a pitched track whose events already alternate
// note-on and note-off, the off velocity acting as release velocity.
func (c *Composer) AddPairedTrack(name string, channel, program uint8, events []engine.Event) {
	c.tracks = append(c.tracks, track{
		name:       name,
		mode:       modePaired,
		channel:    channel,
		program:    program,
		hasProgram: true,
		events:     events,
	})
}

// WriteFile composes the file and writes it to path.
func (c *Composer) WriteFile(path string) error {
	sm, err := c.compose()
	if err != nil {
		return err
	}
	return sm.WriteFile(path)
}

// Write composes the file and writes it to w.
func (c *Composer) Write(w io.Writer) error {
	sm, err := c.compose()
	if err != nil {
		return err
	}
	_, err = sm.WriteTo(w)
	return err
}

func (c *Composer) compose() (*smf.SMF, error) {
	if c.tempo <= 0 {
		return nil, fmt.Errorf("invalid tempo %d", c.tempo)
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var meta smf.Track
	meta.Add(0, smf.MetaMeter(uint8(c.meter.Numerator), uint8(c.meter.Denominator)))
	meta.Add(0, smf.MetaTempo(float64(c.tempo)))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return nil, fmt.Errorf("adding tempo track: %w", err)
	}

	for _, tr := range c.tracks {
		if err := sm.Add(c.buildTrack(tr)); err != nil {
			return nil, fmt.Errorf("adding track %q: %w", tr.name, err)
		}
	}
	return sm, nil
}

func (c *Composer) buildTrack(tr track) smf.Track {
	var st smf.Track
	st.Add(0, smf.MetaTrackSequenceName(tr.name))
	if tr.hasProgram {
		st.Add(0, midi.ProgramChange(tr.channel, tr.program))
	}

	if tr.mode == modeDrums {
		c.addDrumMessages(&st, tr)
	} else {
		c.addTimedMessages(&st, tr)
	}

	st.Close(0)
	return st
}

// addDrumMessages writes each hit with a fixed five tick gate, the way
// hardware drum machines trigger one-shot samples.
func (c *Composer) addDrumMessages(st *smf.Track, tr track) {
	var current uint32
	for _, ev := range sortedByTime(tr.events) {
		tick := c.tick(ev.Time)
		var delta uint32
		if tick > current {
			delta = tick - current
		}
		st.Add(delta, midi.NoteOn(tr.channel, ev.Note, ev.Velocity))
		st.Add(drumGateTicks, midi.NoteOff(tr.channel, ev.Note))
		current = tick + drumGateTicks
	}
}

// timedMessage is a note message at an absolute tick position.
type timedMessage struct {
	tick     uint32
	on       bool
	note     uint8
	velocity uint8
}

func (c *Composer) addTimedMessages(st *smf.Track, tr track) {
	var msgs []timedMessage
	if tr.mode == modePaired {
		msgs = c.pairedMessages(tr.events)
	} else {
		msgs = c.melodicMessages(tr.events)
	}
	// Stable sort keeps a note-off ahead of a note-on landing on the
	// same tick, so back-to-back notes at the same pitch retrigger.
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].tick < msgs[j].tick })

	var current uint32
	for _, m := range msgs {
		var delta uint32
		if m.tick > current {
			delta = m.tick - current
		}
		if m.on {
			st.Add(delta, midi.NoteOn(tr.channel, m.note, m.velocity))
		} else {
			st.Add(delta, midi.NoteOffVelocity(tr.channel, m.note, m.velocity))
		}
		current = m.tick
	}
}

// melodicMessages expands each hit into a note-on plus a synthesized
// note-off whose timing and release velocity follow the note's register.
func (c *Composer) melodicMessages(events []engine.Event) []timedMessage {
	sorted := sortedByTime(events)
	msgs := make([]timedMessage, 0, 2*len(sorted))
	for _, ev := range sorted {
		length := noteLength(ev.Note, ev.Velocity)
		msgs = append(msgs,
			timedMessage{tick: c.tick(ev.Time), on: true, note: ev.Note, velocity: ev.Velocity},
			timedMessage{tick: c.tick(ev.Time + length), note: ev.Note, velocity: releaseVelocity(ev.Velocity, length)},
		)
	}
	return msgs
}

// pairedMessages maps alternating events straight to on/off messages.
func (c *Composer) pairedMessages(events []engine.Event) []timedMessage {
	msgs := make([]timedMessage, 0, len(events))
	for i, ev := range events {
		msgs = append(msgs, timedMessage{
			tick:     c.tick(ev.Time),
			on:       i%2 == 0,
			note:     ev.Note,
			velocity: ev.Velocity,
		})
	}
	return msgs
}

// tick converts a time in seconds to an absolute tick at the composer tempo.
func (c *Composer) tick(seconds float64) uint32 {
	return uint32(seconds * ticksPerBeat * float64(c.tempo) / 60)
}

// noteLength picks a duration in seconds by register. Low notes stay tight,
// bass range rings longer, upper voices longest, all scaled by velocity.
func noteLength(note, velocity uint8) float64 {
	v := float64(velocity) / 127
	switch {
	case note < 50:
		return 0.05 + v*0.1
	case note < 60:
		return 0.2 + v*0.3
	default:
		return 0.1 + v*0.4
	}
}

// releaseVelocity derives the note-off velocity from the note length so
// longer notes get an audible release. Very short notes release silently.
func releaseVelocity(velocity uint8, length float64) uint8 {
	v := float64(velocity) / 127
	switch {
	case length < 0.1:
		return 0
	case length < 0.3:
		return uint8(40 + v*20)
	case length < 0.6:
		return uint8(50 + v*20)
	default:
		return uint8(60 + v*20)
	}
}

func sortedByTime(events []engine.Event) []engine.Event {
	out := append([]engine.Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

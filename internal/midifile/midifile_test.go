package midifile

import (
	"math"
	"testing"

	"github.com/yrbane/acidgrid/internal/engine"
	"github.com/yrbane/acidgrid/internal/timesig"
)

func TestNoteLengthByRegister(t *testing.T) {
	tests := []struct {
		note     uint8
		velocity uint8
		want     float64
	}{
		{36, 0, 0.05},
		{36, 127, 0.15},
		{49, 127, 0.15},
		{50, 127, 0.5},
		{59, 0, 0.2},
		{60, 127, 0.5},
		{72, 0, 0.1},
	}
	for _, tt := range tests {
		got := noteLength(tt.note, tt.velocity)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("noteLength(%d, %d) = %v, want %v", tt.note, tt.velocity, got, tt.want)
		}
	}
}

func TestReleaseVelocityByLength(t *testing.T) {
	tests := []struct {
		velocity uint8
		length   float64
		want     uint8
	}{
		{100, 0.05, 0},
		{0, 0.1, 40},
		{127, 0.2, 60},
		{127, 0.3, 70},
		{0, 0.59, 50},
		{127, 0.6, 80},
		{64, 0.8, 70},
	}
	for _, tt := range tests {
		if got := releaseVelocity(tt.velocity, tt.length); got != tt.want {
			t.Errorf("releaseVelocity(%d, %v) = %d, want %d", tt.velocity, tt.length, got, tt.want)
		}
	}
}

func TestTickConversion(t *testing.T) {
	c := NewComposer(120, timesig.Common)
	tests := []struct {
		seconds float64
		want    uint32
	}{
		{0, 0},
		{0.5, 480},
		{1, 960},
		{2.25, 2160},
	}
	for _, tt := range tests {
		if got := c.tick(tt.seconds); got != tt.want {
			t.Errorf("tick(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}

	fast := NewComposer(174, timesig.Common)
	if got := fast.tick(1); got != 1392 {
		t.Errorf("tick(1) at 174 BPM = %d, want 1392", got)
	}
}

func TestPairedMessagesAlternate(t *testing.T) {
	c := NewComposer(120, timesig.Common)
	events := []engine.Event{
		{Time: 0, Note: 33, Velocity: 100},
		{Time: 0.5, Note: 33, Velocity: 75},
		{Time: 0.5, Note: 45, Velocity: 90},
		{Time: 1, Note: 45, Velocity: 62},
	}

	msgs := c.pairedMessages(events)
	if len(msgs) != len(events) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(events))
	}
	wantTicks := []uint32{0, 480, 480, 960}
	for i, m := range msgs {
		if wantOn := i%2 == 0; m.on != wantOn {
			t.Errorf("message %d: on = %v, want %v", i, m.on, wantOn)
		}
		if m.tick != wantTicks[i] {
			t.Errorf("message %d: tick = %d, want %d", i, m.tick, wantTicks[i])
		}
		if m.note != events[i].Note || m.velocity != events[i].Velocity {
			t.Errorf("message %d: note/velocity = %d/%d, want %d/%d",
				i, m.note, m.velocity, events[i].Note, events[i].Velocity)
		}
	}
}

func TestMelodicMessagesSynthesizeOffs(t *testing.T) {
	c := NewComposer(120, timesig.Common)
	events := []engine.Event{
		{Time: 1, Note: 64, Velocity: 110},
		{Time: 0, Note: 55, Velocity: 100},
	}

	msgs := c.melodicMessages(events)
	if len(msgs) != 2*len(events) {
		t.Fatalf("got %d messages, want %d", len(msgs), 2*len(events))
	}
	// Events are sorted by time before expansion, so the bass note leads.
	if !msgs[0].on || msgs[0].note != 55 || msgs[0].tick != 0 {
		t.Fatalf("first message = %+v, want note-on 55 at tick 0", msgs[0])
	}
	if msgs[1].on {
		t.Fatal("second message should be the synthesized note-off")
	}
	if msgs[1].note != 55 {
		t.Errorf("note-off pitch = %d, want 55", msgs[1].note)
	}
	if msgs[1].tick != 418 {
		t.Errorf("note-off tick = %d, want 418", msgs[1].tick)
	}
	if msgs[1].velocity != 65 {
		t.Errorf("release velocity = %d, want 65", msgs[1].velocity)
	}
	for i := 0; i < len(msgs); i += 2 {
		if msgs[i+1].tick <= msgs[i].tick {
			t.Errorf("note %d: off tick %d not after on tick %d", i/2, msgs[i+1].tick, msgs[i].tick)
		}
	}
}

func TestComposerTrackLayout(t *testing.T) {
	c := NewComposer(128, timesig.Common)
	c.AddDrumTrack("Rhythm", []engine.Event{
		{Time: 0, Note: 36, Velocity: 110},
		{Time: 0.46875, Note: 38, Velocity: 95},
	})
	c.AddMelodicTrack("Bassline", ChannelBassline, ProgramBassline, []engine.Event{
		{Time: 0, Note: 33, Velocity: 100},
		{Time: 0.9375, Note: 36, Velocity: 90},
	})
	c.AddPairedTrack("Sub Bass", ChannelSubBass, ProgramSubBass, []engine.Event{
		{Time: 0, Note: 21, Velocity: 70},
		{Time: 1.875, Note: 21, Velocity: 64},
	})

	sm, err := c.compose()
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(sm.Tracks) != 4 {
		t.Fatalf("got %d tracks, want 4", len(sm.Tracks))
	}

	// Drum track: name + two on/off pairs + end of track.
	drums := sm.Tracks[1]
	if len(drums) != 6 {
		t.Fatalf("drum track has %d events, want 6", len(drums))
	}
	var currentTime uint32
	var onPositions []uint32
	for _, event := range drums {
		currentTime += event.Delta
		var ch, key, vel uint8
		if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			if ch != ChannelDrums {
				t.Errorf("drum hit on channel %d, want %d", ch, ChannelDrums)
			}
			onPositions = append(onPositions, currentTime)
		}
	}
	wantPositions := []uint32{0, 480}
	if len(onPositions) != len(wantPositions) {
		t.Fatalf("got %d drum hits, want %d", len(onPositions), len(wantPositions))
	}
	for i, pos := range onPositions {
		if pos != wantPositions[i] {
			t.Errorf("drum hit %d at tick %d, want %d", i, pos, wantPositions[i])
		}
	}

	// Bassline track: name + program + two on/off pairs + end of track.
	bass := sm.Tracks[2]
	if len(bass) != 7 {
		t.Fatalf("bass track has %d events, want 7", len(bass))
	}
	ons := 0
	for _, event := range bass {
		var ch, key, vel uint8
		if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			if ch != ChannelBassline {
				t.Errorf("bass note on channel %d, want %d", ch, ChannelBassline)
			}
			ons++
		}
	}
	if ons != 2 {
		t.Errorf("bass track has %d note-ons, want 2", ons)
	}

	// Sub bass track: name + program + one on/off pair + end of track.
	sub := sm.Tracks[3]
	if len(sub) != 5 {
		t.Fatalf("sub bass track has %d events, want 5", len(sub))
	}
	ons = 0
	for _, event := range sub {
		var ch, key, vel uint8
		if event.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
			ons++
		}
	}
	if ons != 1 {
		t.Errorf("sub bass track has %d note-ons, want 1", ons)
	}
}

func TestComposerRejectsBadTempo(t *testing.T) {
	c := NewComposer(0, timesig.Common)
	if _, err := c.compose(); err == nil {
		t.Fatal("expected error for zero tempo")
	}
}

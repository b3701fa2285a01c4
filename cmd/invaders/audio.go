package main

import (
	"log"

	"github.com/sadekin/Intel-8080/invaders"
)

// Sound-trigger bit names, indexed by the port they belong to (spec §6).
var sound3Names = map[uint8]string{
	0: "ufo (loop)",
	1: "shot",
	2: "player-die",
	3: "invader-die",
	4: "extended-play",
	5: "amp-enable",
}

var sound5Names = map[uint8]string{
	0: "fleet-1",
	1: "fleet-2",
	2: "fleet-3",
	3: "fleet-4",
	4: "ufo-hit",
}

// logSoundEvents drains the IO subsystem's queued output-port edges and logs
// each one. A real cabinet would trigger or stop a sample here; no sample
// mixer exists anywhere in the reference stack, so this collaborator is the
// full extent of the audio surface (spec §1 non-goal).
func logSoundEvents(logger *log.Logger, io *invaders.IOPorts) {
	names := sound3Names
	for _, ev := range io.DrainOutputEvents() {
		if ev.Port == 5 {
			names = sound5Names
		} else {
			names = sound3Names
		}
		for bit := uint8(0); bit < 6; bit++ {
			name, ok := names[bit]
			if !ok {
				continue
			}
			prevBit := ev.Previous&(1<<bit) != 0
			curBit := ev.Current&(1<<bit) != 0
			if !prevBit && curBit {
				logger.Printf("sound: %s start (port %d)", name, ev.Port)
			} else if prevBit && !curBit {
				logger.Printf("sound: %s stop (port %d)", name, ev.Port)
			}
		}
	}
}

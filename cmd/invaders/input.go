package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/sadekin/Intel-8080/invaders"
)

// Input-port-1 bit assignment (spec §6): bit 0 credit, bit 1 2P-start,
// bit 2 1P-start, bit 4 shoot, bit 5 left, bit 6 right. Bit 3 is the
// hardwired constant 1 IOPorts already sets and bit 7 is unused.
const (
	bitCredit  = 0
	bit2PStart = 1
	bit1PStart = 2
	bitShoot   = 4
	bitLeft    = 5
	bitRight   = 6
)

var inputKeys = map[uint8]pixelgl.Button{
	bitCredit:  pixelgl.KeyC,
	bit2PStart: pixelgl.Key2,
	bit1PStart: pixelgl.Key1,
	bitShoot:   pixelgl.KeySpace,
	bitLeft:    pixelgl.KeyLeft,
	bitRight:   pixelgl.KeyRight,
}

// pollInput mirrors every bound key's current state onto input port 1.
func pollInput(win *pixelgl.Window, io *invaders.IOPorts) {
	for bit, key := range inputKeys {
		io.SetInputBit(1, bit, win.Pressed(key))
	}
}

// Package board models target-board capabilities and upload parameters.
// Profiles are loaded once at startup and treated as read-only afterwards.
package board

// DefaultUploadSpeed is the baud rate assumed when a board document omits
// upload.speed.
const DefaultUploadSpeed = 115200

// UploadSettings describes how firmware reaches this board. Command is a
// template with {token} placeholders filled by the uploader.
type UploadSettings struct {
	Command string
	Tool    string
	Speed   int
}

// PinCapabilities lists the pins a board exposes.
type PinCapabilities struct {
	Digital []int
	PWM     []int
	Analog  []string
}

// Profile describes one target board.
type Profile struct {
	ID     string
	Name   string
	FQBN   string
	Upload UploadSettings
	Pins   PinCapabilities
}

// HasDigitalPin reports whether pin is in the board's digital pin list.
func (p *Profile) HasDigitalPin(pin int) bool {
	for _, d := range p.Pins.Digital {
		if d == pin {
			return true
		}
	}
	return false
}

// HasPWMPin reports whether pin supports PWM on this board.
func (p *Profile) HasPWMPin(pin int) bool {
	for _, d := range p.Pins.PWM {
		if d == pin {
			return true
		}
	}
	return false
}

package testutil

import (
	"github.com/vk/blockforge/internal/board"
	"github.com/vk/blockforge/internal/catalog"
	"github.com/zclconf/go-cty/cty"
)

// StockRegistry builds the stock block set used across generator and
// validator tests: a start event, an LED statement with a setup snippet, a
// delay, and an if with a placeholder container.
func StockRegistry() *catalog.Registry {
	defs := map[string]*catalog.BlockDefinition{
		"EV_START": {
			ID:       "EV_START",
			Name:     "Start",
			Category: "events",
			Kind:     catalog.KindEvent,
			Containers: []catalog.BlockContainerSpec{
				{Name: "setup", Section: catalog.SectionSetup},
				{Name: "loop", Section: catalog.SectionLoop},
			},
		},
		"LS_LED_ON": {
			ID:       "LS_LED_ON",
			Name:     "LED on",
			Category: "logic",
			Kind:     catalog.KindStatement,
			Section:  catalog.SectionLoop,
			Template: "digitalWrite({pin}, HIGH);",
			Parameters: []catalog.BlockParameter{
				{Name: "pin", Type: catalog.ParamDigitalPin, Default: cty.NumberIntVal(13)},
			},
			Setup: []string{"pinMode({pin}, OUTPUT);"},
		},
		"TM_DELAY": {
			ID:       "TM_DELAY",
			Name:     "Delay",
			Category: "timing",
			Kind:     catalog.KindStatement,
			Section:  catalog.SectionLoop,
			Template: "delay({ms});",
			Parameters: []catalog.BlockParameter{
				{Name: "ms", Type: catalog.ParamInt, Default: cty.NumberIntVal(1000)},
			},
		},
		"CTL_IF": {
			ID:       "CTL_IF",
			Name:     "If",
			Category: "logic",
			Kind:     catalog.KindStatement,
			Section:  catalog.SectionLoop,
			Template: "if ({condition}) {\n{then}\n}",
			Parameters: []catalog.BlockParameter{
				{Name: "condition", Type: catalog.ParamString, Default: cty.StringVal("true")},
			},
			Containers: []catalog.BlockContainerSpec{
				{Name: "then", Section: catalog.SectionLoop, Placeholder: "then"},
			},
		},
	}
	categories := map[string]catalog.Category{
		"events": {Title: "Events"},
		"logic":  {Title: "Logic"},
		"timing": {Title: "Timing"},
	}
	return catalog.NewRegistry(defs, categories, map[string]string{"LED_ON": "LS_LED_ON"})
}

// Uno returns an Arduino-Uno-shaped board profile.
func Uno() *board.Profile {
	return &board.Profile{
		ID:   "uno",
		Name: "Arduino Uno",
		FQBN: "arduino:avr:uno",
		Upload: board.UploadSettings{
			Command: "{avrdude} -p m328p -P {port} -b {speed} -U flash:w:{hex_path}",
			Tool:    "avrdude",
			Speed:   board.DefaultUploadSpeed,
		},
		Pins: board.PinCapabilities{
			Digital: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13},
			PWM:     []int{3, 5, 6, 9, 10, 11},
			Analog:  []string{"A0", "A1", "A2", "A3", "A4", "A5"},
		},
	}
}

package catalog

import "github.com/zclconf/go-cty/cty"

// builtinDefinitions is the minimal generator-capable block set used when a
// catalog document carries palette data only. It keeps generation working in
// a degraded mode with the stock start/LED/delay/if blocks.
func builtinDefinitions() map[string]*BlockDefinition {
	defs := []*BlockDefinition{
		{
			ID:       DefaultEntryBlockID,
			Name:     "Start",
			Category: "events",
			Kind:     KindEvent,
			Containers: []BlockContainerSpec{
				{Name: "setup", Section: SectionSetup},
				{Name: "loop", Section: SectionLoop},
			},
		},
		{
			ID:       "LS_LED_ON",
			Name:     "LED on",
			Category: "logic",
			Kind:     KindStatement,
			Section:  SectionLoop,
			Template: "digitalWrite({pin}, HIGH);",
			Parameters: []BlockParameter{
				{Name: "pin", Type: ParamInt, Default: cty.NumberIntVal(13)},
			},
			Setup: []string{"pinMode({pin}, OUTPUT);"},
		},
		{
			ID:       "TM_DELAY",
			Name:     "Delay",
			Category: "timing",
			Kind:     KindStatement,
			Section:  SectionLoop,
			Template: "delay({ms});",
			Parameters: []BlockParameter{
				{Name: "ms", Type: ParamInt, Default: cty.NumberIntVal(1000)},
			},
		},
		{
			ID:       "CTL_IF",
			Name:     "If",
			Category: "logic",
			Kind:     KindStatement,
			Section:  SectionLoop,
			Template: "if ({condition}) {\n{then}\n}",
			Parameters: []BlockParameter{
				{Name: "condition", Type: ParamString, Default: cty.StringVal("true")},
			},
			Containers: []BlockContainerSpec{
				{Name: "then", Section: SectionLoop, Placeholder: "then"},
			},
		},
	}

	out := make(map[string]*BlockDefinition, len(defs))
	for _, def := range defs {
		out[def.ID] = def
	}
	return out
}

// builtinCategories matches the builtin definition set.
func builtinCategories() map[string]Category {
	return map[string]Category{
		"events": {Title: "Events", Color: "#607D8B"},
		"logic":  {Title: "Logic", Color: "#4CAF50"},
		"timing": {Title: "Timing", Color: "#FFC107"},
	}
}

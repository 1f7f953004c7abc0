package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockforge/internal/catalog"
)

func TestRegistryUnknownBlock(t *testing.T) {
	registry := catalog.NewRegistry(nil, nil, nil)

	_, err := registry.Get("XX_NOPE")
	require.Error(t, err)

	var unknown *catalog.UnknownBlockError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "XX_NOPE", unknown.ID)
	assert.False(t, registry.Contains("XX_NOPE"))
}

func TestRegistryCanonicalPassthrough(t *testing.T) {
	registry := catalog.NewRegistry(nil, nil, map[string]string{"LED_ON": "LS_LED_ON"})

	assert.Equal(t, "LS_LED_ON", registry.Canonical("LED_ON"))
	assert.Equal(t, "TM_DELAY", registry.Canonical("TM_DELAY"))
	assert.Equal(t, "made_up", registry.Canonical("made_up"))
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	defs := map[string]*catalog.BlockDefinition{
		"TM_DELAY":  {ID: "TM_DELAY"},
		"CTL_IF":    {ID: "CTL_IF"},
		"EV_START":  {ID: "EV_START"},
		"LS_LED_ON": {ID: "LS_LED_ON"},
	}
	registry := catalog.NewRegistry(defs, nil, nil)

	var ids []string
	for _, def := range registry.Definitions() {
		ids = append(ids, def.ID)
	}
	assert.Equal(t, []string{"CTL_IF", "EV_START", "LS_LED_ON", "TM_DELAY"}, ids)
}

func TestRegistryEntryBlockID(t *testing.T) {
	registry := catalog.NewRegistry(nil, nil, nil)
	assert.Equal(t, catalog.DefaultEntryBlockID, registry.EntryBlockID())
}

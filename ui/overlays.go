package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayVision       OverlayID = "vision"
	OverlayPartnerLinks OverlayID = "partner_links"
	OverlayActionLabels OverlayID = "action_labels"
	OverlayNames        OverlayID = "names"
	OverlayPerf         OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "V")
	Category    string      // Grouping (e.g., "creatures", "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
	order       []OverlayID // Maintains insertion order for display
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayVision,
		Name:        "Vision",
		Description: "Show every creature's vision radius",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "creatures",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPartnerLinks,
		Name:        "Partners",
		Description: "Connect engaged creatures to their partners",
		Key:         rl.KeyL,
		KeyLabel:    "L",
		Category:    "creatures",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayActionLabels,
		Name:        "Actions",
		Description: "Label creatures with their current action",
		Key:         rl.KeyA,
		KeyLabel:    "A",
		Category:    "creatures",
		Exclusive:   []OverlayID{OverlayNames},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayNames,
		Name:        "Names",
		Description: "Label creatures with their names",
		Key:         rl.KeyN,
		KeyLabel:    "N",
		Category:    "creatures",
		Exclusive:   []OverlayID{OverlayActionLabels},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Show step phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.order = append(r.order, desc.ID)
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Keys returns the toggle keys of all overlays in registration order.
func (r *OverlayRegistry) Keys() []int32 {
	keys := make([]int32, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}

// Legend returns a one-line key legend, e.g. "V: Vision | L: Partners".
func (r *OverlayRegistry) Legend() string {
	var s string
	for i, desc := range r.descriptors {
		if desc.KeyLabel == "" {
			continue
		}
		if i > 0 {
			s += " | "
		}
		s += desc.KeyLabel + ": " + desc.Name
	}
	return s
}

// EnabledOverlays returns a list of currently enabled overlay IDs.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, id := range r.order {
		if r.enabled[id] {
			result = append(result, id)
		}
	}
	return result
}

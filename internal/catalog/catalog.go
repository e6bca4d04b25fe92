// Package catalog defines the ordered species list that fixes the output
// schema: the lookup key used to sample the reactor and the human-readable
// column label are carried together, so sampling order and header order can
// never drift apart.
package catalog

// Slot pairs a mechanism lookup key with the semantic column label written
// to the report. The key is authoritative; the label is cosmetic.
type Slot struct {
	Key   string
	Label string
}

// Catalog is an immutable ordered slot list.
type Catalog struct {
	slots []Slot
}

// fixed is the standing shock-tube schema between the fuel column and the
// user-defined slot: bulk reactants, ignition-marker radicals, products,
// then the HyChem pyrolysis intermediates.
var fixed = []Slot{
	{Key: "O2", Label: "Oxygen O2"},
	{Key: "N2", Label: "Nitrogen N2"},
	{Key: "AR", Label: "Argon Ar"},
	{Key: "OH", Label: "Hydroxyl-radical OH"},
	{Key: "OH*", Label: "OH*-radical OH*"},
	{Key: "CH", Label: "CH-radical CH"},
	{Key: "CH*", Label: "CH*-radical CH*"},
	{Key: "H2O", Label: "Water H2O"},
	{Key: "CO2", Label: "Carbon-dioxide CO2"},
	{Key: "CO", Label: "Carbon-monoxide CO"},
	{Key: "H2", Label: "Hydrogen H2"},
	{Key: "CH4", Label: "Methane CH4"},
	{Key: "C2H4", Label: "Ethylene C2H4"},
	{Key: "C2H6", Label: "Ethane C2H6"},
	{Key: "C2H2", Label: "Acetylene C2H2"},
	{Key: "C3H6", Label: "Propene C3H6"},
	{Key: "C6H6", Label: "Benzene C6H6"},
	{Key: "C7H8", Label: "Toluene C7H8"},
}

// Default builds the standing catalog: the caller's fuel first, the fixed
// schema, then the caller-defined extra slot. The order is identical across
// mechanisms; species a mechanism lacks simply sample as zero.
func Default(fuel, extra string) Catalog {
	slots := make([]Slot, 0, len(fixed)+2)
	slots = append(slots, Slot{Key: fuel, Label: "Fuel " + fuel})
	slots = append(slots, fixed...)

	label := "User-defined"
	if extra != "" {
		label += " " + extra
	}
	slots = append(slots, Slot{Key: extra, Label: label})

	return Catalog{slots: slots}
}

// New builds a catalog from an explicit slot list, for synthetic schemas
// in tests or alternative fuel surrogate sets.
func New(slots []Slot) Catalog {
	c := Catalog{slots: make([]Slot, len(slots))}
	copy(c.slots, slots)
	return c
}

// Len returns the number of slots.
func (c Catalog) Len() int { return len(c.slots) }

// Slots returns a copy of the ordered slot list.
func (c Catalog) Slots() []Slot {
	out := make([]Slot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Keys returns the lookup keys in slot order.
func (c Catalog) Keys() []string {
	keys := make([]string, len(c.slots))
	for i, s := range c.slots {
		keys[i] = s.Key
	}
	return keys
}

// Labels returns the column labels in slot order.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c.slots))
	for i, s := range c.slots {
		labels[i] = s.Label
	}
	return labels
}

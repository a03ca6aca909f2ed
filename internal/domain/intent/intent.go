package intent

import "strings"

// LabelSlots are the slot names that carry search labels, in extraction order.
var LabelSlots = []string{"slot1", "slot2"}

// Interpretation is the structured output of the intent resolver.
type Interpretation struct {
	messages []string
	slots    map[string]string
}

// NewInterpretation creates an Interpretation. slots maps slot name to its
// interpreted value; absent slots are simply missing from the map.
func NewInterpretation(messages []string, slots map[string]string) Interpretation {
	return Interpretation{messages: messages, slots: slots}
}

// Messages returns the resolver's reply messages.
func (i *Interpretation) Messages() []string { return i.messages }

// Slots returns the interpreted slot values.
func (i *Interpretation) Slots() map[string]string { return i.slots }

// Labels extracts the label slots in LabelSlots order, skipping empty values.
// Duplicates are kept.
func (i *Interpretation) Labels() []string {
	labels := make([]string, 0, len(LabelSlots))
	for _, name := range LabelSlots {
		v := strings.TrimSpace(i.slots[name])
		if v == "" {
			continue
		}
		labels = append(labels, v)
	}
	return labels
}

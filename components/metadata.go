package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float32 // Minimum value (for bars)
	Max          float32 // Maximum value (for bars)
	IsCentered   bool    // True for centered bar display
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// SwimFieldDescriptors returns the telemetry columns shown for a jelly.
func SwimFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "phase", Label: "Phase", Format: "%.2f", Min: 0, Max: 1, IsBar: true, ShowWhenZero: true, Group: "pulse"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Min: 0, Max: 2, IsBar: true, ShowWhenZero: true, Group: "motion"},
		{ID: "heading", Label: "Heading", Format: "%.2f", Min: -3.14159, Max: 3.14159, IsCentered: true, Group: "motion"},
		{ID: "pitch", Label: "Pitch", Format: "%.2f", Min: -1.2566, Max: 1.2566, IsCentered: true, Group: "motion"},
		{ID: "violation", Label: "Stretch", Format: "%.3f", Group: "body"},
	}
}

// Value returns the field of s named by id.
func (s Swim) Value(id string) (float32, bool) {
	switch id {
	case "phase":
		return s.Phase, true
	case "speed":
		return s.Speed, true
	case "heading":
		return s.Heading, true
	case "pitch":
		return s.Pitch, true
	case "violation":
		return s.Violation, true
	}
	return 0, false
}

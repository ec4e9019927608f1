package components

// FieldDescriptor describes an agent field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float32 // Minimum value (for bars)
	Max    float32 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// AgentFieldDescriptors returns metadata for the selected-agent readout.
func AgentFieldDescriptors(maxSpeed, maxForce float32) []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "id", Label: "ID", Format: "%d", Group: "identity"},
		{ID: "role", Label: "Role", Group: "identity"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Min: 0, Max: maxSpeed, IsBar: true, Group: "motion"},
		{ID: "force", Label: "Steering", Format: "%.2f", Min: 0, Max: maxForce, IsBar: true, Group: "motion"},
		{ID: "wander_side", Label: "Wander X", Format: "%.2f", Min: -1, Max: 1, Group: "wander"},
		{ID: "wander_up", Label: "Wander Y", Format: "%.2f", Min: -1, Max: 1, Group: "wander"},
	}
}

package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/steer/components"
)

// AgentReadout is the display state of the selected agent.
type AgentReadout struct {
	ID         uint32
	Role       components.Role
	Speed      float64
	Force      float64
	WanderSide float64
	WanderUp   float64
	Outside    float64 // path followers only
}

// FieldValue implements FieldSource for components.AgentFieldDescriptors.
func (a AgentReadout) FieldValue(id string) (any, bool) {
	switch id {
	case "id":
		return a.ID, true
	case "role":
		return a.Role.String(), true
	case "speed":
		return a.Speed, true
	case "force":
		return a.Force, true
	case "wander_side":
		return a.WanderSide, true
	case "wander_up":
		return a.WanderUp, true
	}
	return nil, false
}

// Inspector renders the selected-agent panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel for agent, with bars scaled to the vehicle limits.
func (ins *Inspector) Draw(agent AgentReadout, maxSpeed, maxForce float32) {
	r := ins.renderer
	padding := r.Theme.Padding
	fields := components.AgentFieldDescriptors(maxSpeed, maxForce)

	height := padding*2 + r.Theme.LineHeight + int32(len(fields)+2)*(r.Theme.LineHeight+2)
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	x := ins.x + padding
	y := r.DrawSectionHeader(x, ins.y+padding, fmt.Sprintf("Agent #%d", agent.ID))
	y = r.DrawFields(x, y, fields, agent, ins.width-padding*2)

	if agent.Role == components.RolePathFollower {
		c := r.Theme.ValueColor
		if agent.Outside > 0 {
			c = r.Theme.Hot
		}
		rl.DrawText(fmt.Sprintf("Corridor: %+.2f", -agent.Outside), x, y+4, r.Theme.FontSize, c)
	}
}

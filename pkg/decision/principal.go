package decision

import (
	"github.com/ironlatch/accessnode/pkg/schedule"
	"github.com/ironlatch/accessnode/pkg/tempcode"
)

// Principal is a registered user eligible for card/PIN resolution.
type Principal struct {
	Name      string
	Active    bool
	Cards     []string
	PINs      []string
	Doors     []int
	Schedules []schedule.Interval
}

func (p *Principal) hasDoor(door int) bool {
	for _, d := range p.Doors {
		if d == door {
			return true
		}
	}
	return false
}

// TempCode is a registered temporary PIN credential.
type TempCode struct {
	Code   string
	Name   string
	Active bool
	Policy tempcode.Policy
	Doors  []int
}

func (c *TempCode) hasDoor(door int) bool {
	for _, d := range c.Doors {
		if d == door {
			return true
		}
	}
	return false
}

package ecs

import (
	"github.com/phanxgames/yule"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FireworkEventType is the Donburi event type for yule firework events.
var FireworkEventType = events.NewEventType[yule.FireworkEvent]()

// Tally counts firework activity seen by a world.
type Tally struct {
	Launches    int
	Detonations int
	Sparks      int
}

// TallyComponent stores a Tally on an entity.
var TallyComponent = donburi.NewComponentType[Tally]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to FireworkEventType and delivered by FlushEvents, which the
// scene calls at the end of every Step.
func NewDonburiSink(world donburi.World) yule.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event yule.FireworkEvent) {
	FireworkEventType.Publish(s.world, event)
}

func (s *donburiSink) FlushEvents() {
	FireworkEventType.ProcessEvents(s.world)
}

// TrackTally creates an entity holding a Tally and subscribes a system that
// updates it from FireworkEventType.
func TrackTally(world donburi.World) donburi.Entity {
	entity := world.Create(TallyComponent)
	FireworkEventType.Subscribe(world, func(w donburi.World, e yule.FireworkEvent) {
		if !w.Valid(entity) {
			return
		}
		t := TallyComponent.Get(w.Entry(entity))
		switch e.Type {
		case yule.EventLaunch:
			t.Launches++
		case yule.EventDetonate:
			t.Detonations++
			t.Sparks += e.Sparks
		}
	})
	return entity
}

// GetTally returns the tally stored on entity.
func GetTally(world donburi.World, entity donburi.Entity) Tally {
	if !world.Valid(entity) {
		return Tally{}
	}
	return *TallyComponent.Get(world.Entry(entity))
}

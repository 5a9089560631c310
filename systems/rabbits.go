package systems

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// DeathCause records why an agent was removed.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota
	DeathDehydration
	DeathOldAge     // deterministic, at or past max age
	DeathSenescence // stochastic, between senescence and max age
)

// String returns the telemetry name for a DeathCause.
func (c DeathCause) String() string {
	switch c {
	case DeathStarvation:
		return "starvation"
	case DeathDehydration:
		return "dehydration"
	case DeathOldAge:
		return "old_age"
	case DeathSenescence:
		return "senescence"
	default:
		return "unknown"
	}
}

// Death describes one removal from the population.
type Death struct {
	Entity ecs.Entity
	ID     uint64
	Age    uint32
	Cause  DeathCause
}

// RabbitTemplate holds the per-agent parameters every new rabbit starts with.
type RabbitTemplate struct {
	SightDistance         int
	SatisfactionThreshold uint32
	FullThreshold         uint32
}

// RabbitStore owns the rabbit entities and keeps the population registry in sync with the world.
type RabbitStore struct {
	world         *ecs.World
	mapper        *ecs.Map4[components.Position, components.Vitals, components.Rabbit, components.Perception]
	posMap        *ecs.Map[components.Position]
	vitalsMap     *ecs.Map[components.Vitals]
	rabbitMap     *ecs.Map[components.Rabbit]
	perceptionMap *ecs.Map[components.Perception]
	pop           *Population
	nextSerial    uint64
}

// NewRabbitStore creates a store backed by the given world and registry.
func NewRabbitStore(w *ecs.World, pop *Population) *RabbitStore {
	return &RabbitStore{
		world:         w,
		mapper:        ecs.NewMap4[components.Position, components.Vitals, components.Rabbit, components.Perception](w),
		posMap:        ecs.NewMap[components.Position](w),
		vitalsMap:     ecs.NewMap[components.Vitals](w),
		rabbitMap:     ecs.NewMap[components.Rabbit](w),
		perceptionMap: ecs.NewMap[components.Perception](w),
		pop:           pop,
	}
}

// Population returns the registry.
func (s *RabbitStore) Population() *Population {
	return s.pop
}

// NextSerial returns a fresh serial number for identifier generation.
func (s *RabbitStore) NextSerial() uint64 {
	n := s.nextSerial
	s.nextSerial++
	return n
}

// Spawn creates a rabbit and registers it. The caller enforces the population cap.
func (s *RabbitStore) Spawn(pos components.Position, vitals components.Vitals, rabbit components.Rabbit) ecs.Entity {
	perc := components.Perception{}
	e := s.mapper.NewEntity(&pos, &vitals, &rabbit, &perc)
	s.pop.Insert(e)
	return e
}

// Alive reports whether the handle still refers to a registered rabbit.
func (s *RabbitStore) Alive(e ecs.Entity) bool {
	return s.pop.Contains(e) && s.world.Alive(e)
}

// Get returns the rabbit's components, or ok=false if it no longer exists.
func (s *RabbitStore) Get(e ecs.Entity) (pos *components.Position, vitals *components.Vitals, rabbit *components.Rabbit, ok bool) {
	if !s.Alive(e) {
		return nil, nil, nil, false
	}
	pos, vitals, rabbit, _ = s.mapper.Get(e)
	return pos, vitals, rabbit, true
}

// Perception returns the rabbit's perception sets, or nil if it no longer exists.
func (s *RabbitStore) Perception(e ecs.Entity) *components.Perception {
	if !s.Alive(e) {
		return nil
	}
	return s.perceptionMap.Get(e)
}

// Position returns the rabbit's position, or ok=false if it no longer exists.
func (s *RabbitStore) Position(e ecs.Entity) (components.Position, bool) {
	if !s.Alive(e) {
		return components.Position{}, false
	}
	return *s.posMap.Get(e), true
}

// Remove unregisters and destroys a rabbit.
// Returns false if it was already gone, so a second removal in the same tick is a no-op.
func (s *RabbitStore) Remove(e ecs.Entity) bool {
	if !s.pop.Remove(e) {
		return false
	}
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
	return true
}

// Kill removes a rabbit and describes the death. ok is false if it was already gone.
func (s *RabbitStore) Kill(e ecs.Entity, cause DeathCause) (Death, bool) {
	_, _, rabbit, ok := s.Get(e)
	if !ok {
		return Death{}, false
	}
	d := Death{Entity: e, ID: rabbit.ID, Age: rabbit.Age, Cause: cause}
	s.Remove(e)
	return d, true
}

// CombineIDs derives an offspring identifier from both parents and a serial.
// The serial keeps siblings of the same litter distinct.
func CombineIDs(a, b, serial uint64) uint64 {
	h := fnv.New64a()
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], a)
	binary.LittleEndian.PutUint64(buf[8:16], b)
	binary.LittleEndian.PutUint64(buf[16:24], serial)
	h.Write(buf[:])
	return h.Sum64()
}

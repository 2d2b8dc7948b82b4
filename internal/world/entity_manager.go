package world

import (
	"slices"

	"github.com/bhaddad5/Scrap-Merchant/internal/entity"
	"github.com/bhaddad5/Scrap-Merchant/internal/profiling"
)

// EntityManager ticks the props of a world and forgets the destroyed ones.
// It belongs to the game goroutine and is not safe for concurrent use.
type EntityManager struct {
	entities []entity.Entity
	pruned   int
}

func NewEntityManager() *EntityManager {
	return &EntityManager{}
}

func (em *EntityManager) Add(e entity.Entity) {
	if e == nil {
		return
	}
	em.entities = append(em.entities, e)
}

// Update ticks every live entity, then drops the dead ones. Entities spawned
// while ticking (a commit spilling a leftover, say) are ticked in the same pass.
func (em *EntityManager) Update(dt float64) {
	defer profiling.Track("world.UpdateEntities")()

	for i := 0; i < len(em.entities); i++ {
		if e := em.entities[i]; !e.IsDead() {
			e.Update(dt)
		}
	}
	n := len(em.entities)
	em.entities = slices.DeleteFunc(em.entities, func(e entity.Entity) bool { return e.IsDead() })
	em.pruned += n - len(em.entities)
}

// Live returns the entities not yet destroyed.
func (em *EntityManager) Live() []entity.Entity {
	out := make([]entity.Entity, 0, len(em.entities))
	for _, e := range em.entities {
		if !e.IsDead() {
			out = append(out, e)
		}
	}
	return out
}

// Len counts tracked entities, dead ones included until the next Update.
func (em *EntityManager) Len() int { return len(em.entities) }

// Pruned counts the entities dropped so far.
func (em *EntityManager) Pruned() int { return em.pruned }

package event

import "github.com/l1jgo/debugconsole/internal/core/ecs"

// PauseRequested asks the console to take over the host loop.
type PauseRequested struct {
	Source string // "input" or the signal name
}

type EntitySpawned struct {
	EntityID ecs.EntityID
}

type EntityDespawned struct {
	EntityID ecs.EntityID
}

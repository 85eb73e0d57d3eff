// Package console connects the command grammar, the metadata queries and
// the run-state controller to the host's system runner.
package console

import (
	"fmt"

	"github.com/l1jgo/debugconsole/internal/console/command"
	"github.com/l1jgo/debugconsole/internal/console/inspect"
	"github.com/l1jgo/debugconsole/internal/console/runstate"
	"github.com/l1jgo/debugconsole/internal/core/ecs"
	"go.uber.org/zap"
)

var _ inspect.MetadataSource = (*ecs.World)(nil)

// Dispatcher routes parsed invocations to queries or to the controller. It
// holds no state of its own.
type Dispatcher struct {
	src  inspect.MetadataSource
	ctl  *runstate.Controller
	exit func()
	log  *zap.Logger
}

// NewDispatcher builds a dispatcher. exit is called for "quit" and is not
// expected to return in production.
func NewDispatcher(src inspect.MetadataSource, ctl *runstate.Controller, exit func(), log *zap.Logger) *Dispatcher {
	return &Dispatcher{src: src, ctl: ctl, exit: exit, log: log}
}

// Dispatch runs inv and returns the text to show the operator.
func (d *Dispatcher) Dispatch(inv command.Invocation) string {
	switch inv := inv.(type) {
	case command.Resume:
		d.ctl.Resume()
		d.log.Info("host resumed")
		return "...resuming\n"
	case command.Quit:
		d.log.Info("quit requested")
		d.exit()
		return ""
	case command.Help:
		text, err := command.Usage(inv.Path)
		if err != nil {
			return err.Error() + "\n"
		}
		return text
	case command.Counts:
		return inspect.CountsSummary(d.src)

	case command.ArchetypesList:
		return inspect.ListArchetypes(d.src)
	case command.ArchetypeInfo:
		return inspect.DescribeArchetype(d.src, ecs.ArchetypeID(inv.ID))
	case command.ArchetypesFindByComponentID:
		return inspect.FindArchetypesByComponentID(d.src, ecs.ComponentID(inv.ID))
	case command.ArchetypesFindByComponentName:
		return inspect.FindArchetypesByComponentName(d.src, inv.Name)
	case command.ArchetypesFindByEntityID:
		return inspect.FindArchetypesByEntityID(d.src, inv.ID)

	case command.ComponentsList:
		return inspect.ListComponents(d.src, inv.Long, inv.Filter)
	case command.ComponentInfoByID:
		return inspect.DescribeComponent(d.src, ecs.ComponentID(inv.ID))
	case command.ComponentInfoByName:
		return inspect.DescribeComponentByName(d.src, inv.Name)

	case command.EntitiesList:
		return inspect.ListEntities(d.src)
	case command.EntitiesFindByComponentID:
		return inspect.FindEntitiesByComponentID(d.src, ecs.ComponentID(inv.ID))
	case command.EntitiesFindByComponentName:
		return inspect.FindEntitiesByComponentName(d.src, inv.Name)

	case command.ResourcesList:
		return inspect.ListResources(d.src)
	case command.ReflectList:
		return inspect.ListTypes(d.src)
	default:
		panic(fmt.Sprintf("console: unhandled invocation %T", inv))
	}
}

package command

// Invocation is a fully parsed command line. The set of implementations is
// closed; consumers switch over the concrete types. Help carries the command
// path whose usage was asked for, empty for the top level.
type Invocation interface {
	invocation()
}

type (
	Resume struct{}
	Quit   struct{}
	Help   struct{ Path []string }
	Counts struct{}

	ArchetypesList                struct{}
	ArchetypeInfo                 struct{ ID uint32 }
	ArchetypesFindByComponentID   struct{ ID uint32 }
	ArchetypesFindByComponentName struct{ Name string }
	ArchetypesFindByEntityID      struct{ ID uint32 }

	ComponentsList struct {
		Filter string
		Long   bool
	}
	ComponentInfoByID   struct{ ID uint32 }
	ComponentInfoByName struct{ Name string }

	EntitiesList                struct{}
	EntitiesFindByComponentID   struct{ ID uint32 }
	EntitiesFindByComponentName struct{ Name string }

	ResourcesList struct{}
	ReflectList   struct{}
)

func (Resume) invocation()                        {}
func (Quit) invocation()                          {}
func (Help) invocation()                          {}
func (Counts) invocation()                        {}
func (ArchetypesList) invocation()                {}
func (ArchetypeInfo) invocation()                 {}
func (ArchetypesFindByComponentID) invocation()   {}
func (ArchetypesFindByComponentName) invocation() {}
func (ArchetypesFindByEntityID) invocation()      {}
func (ComponentsList) invocation()                {}
func (ComponentInfoByID) invocation()             {}
func (ComponentInfoByName) invocation()           {}
func (EntitiesList) invocation()                  {}
func (EntitiesFindByComponentID) invocation()     {}
func (EntitiesFindByComponentName) invocation()   {}
func (ResourcesList) invocation()                 {}
func (ReflectList) invocation()                   {}

// Package command holds the console's command grammar: a static tree of
// commands with typed flags, a whitespace tokenizer, and a parser that turns
// tokens into an Invocation or a *ParseError carrying usage text.
package command

// FlagKind is the value type a flag accepts.
type FlagKind int

const (
	FlagBool FlagKind = iota // present or absent, takes no value
	FlagInt                  // non-negative 32-bit integer
	FlagText
)

func (k FlagKind) placeholder() string {
	switch k {
	case FlagInt:
		return "<int>"
	case FlagText:
		return "<text>"
	default:
		return ""
	}
}

type Flag struct {
	Name  string // without the leading "--"
	Kind  FlagKind
	About string
}

// Node is one command in the grammar tree. A node either has subcommands
// (one of which is required) or is a leaf with a build function. Flags
// named in Exclusive form a group of which exactly one must be given.
type Node struct {
	Name        string
	About       string
	Flags       []Flag
	Exclusive   []string
	Subcommands []*Node

	build func(v values) Invocation
}

func (n *Node) sub(name string) *Node {
	for _, s := range n.Subcommands {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (n *Node) flag(name string) (Flag, bool) {
	for _, f := range n.Flags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

func (n *Node) exclusive(name string) bool {
	for _, x := range n.Exclusive {
		if x == name {
			return true
		}
	}
	return false
}

// Grammar returns the root of the console's command tree.
func Grammar() *Node { return root }

var root = &Node{
	About: "Debug console commands",
	Subcommands: []*Node{
		{
			Name:  "resume",
			About: "resume running the host",
			build: func(values) Invocation { return Resume{} },
		},
		{
			Name:  "quit",
			About: "exit the host process",
			build: func(values) Invocation { return Quit{} },
		},
		{
			Name:  "counts",
			About: "print entity, component and archetype totals",
			build: func(values) Invocation { return Counts{} },
		},
		{
			Name:  "archetypes",
			About: "inspect archetypes",
			Subcommands: []*Node{
				{
					Name:  "list",
					About: "list archetype ids with their entity counts",
					build: func(values) Invocation { return ArchetypesList{} },
				},
				{
					Name:  "info",
					About: "describe one archetype",
					Flags: []Flag{
						{Name: "id", Kind: FlagInt, About: "archetype id"},
					},
					Exclusive: []string{"id"},
					build: func(v values) Invocation { return ArchetypeInfo{ID: v.num("id")} },
				},
				{
					Name:  "find",
					About: "find archetypes by component or entity",
					Flags: []Flag{
						{Name: "componentid", Kind: FlagInt, About: "component id"},
						{Name: "componentname", Kind: FlagText, About: "unique substring of a component name"},
						{Name: "entityid", Kind: FlagInt, About: "entity index"},
					},
					Exclusive: []string{"componentid", "componentname", "entityid"},
					build: func(v values) Invocation {
						switch {
						case v.has("componentid"):
							return ArchetypesFindByComponentID{ID: v.num("componentid")}
						case v.has("componentname"):
							return ArchetypesFindByComponentName{Name: v.text("componentname")}
						default:
							return ArchetypesFindByEntityID{ID: v.num("entityid")}
						}
					},
				},
			},
		},
		{
			Name:  "components",
			About: "inspect registered components",
			Subcommands: []*Node{
				{
					Name:  "list",
					About: "list component ids and names",
					Flags: []Flag{
						{Name: "filter", Kind: FlagText, About: "keep names containing this text"},
						{Name: "long", Kind: FlagBool, About: "show fully qualified names"},
					},
					build: func(v values) Invocation {
						return ComponentsList{Filter: v.text("filter"), Long: v.has("long")}
					},
				},
				{
					Name:  "info",
					About: "describe a component",
					Flags: []Flag{
						{Name: "id", Kind: FlagInt, About: "component id"},
						{Name: "name", Kind: FlagText, About: "substring of a component name"},
					},
					Exclusive: []string{"id", "name"},
					build: func(v values) Invocation {
						if v.has("id") {
							return ComponentInfoByID{ID: v.num("id")}
						}
						return ComponentInfoByName{Name: v.text("name")}
					},
				},
			},
		},
		{
			Name:  "entities",
			About: "inspect entities",
			Subcommands: []*Node{
				{
					Name:  "list",
					About: "list live entity indices with their archetype",
					build: func(values) Invocation { return EntitiesList{} },
				},
				{
					Name:  "find",
					About: "find entities holding a component",
					Flags: []Flag{
						{Name: "componentid", Kind: FlagInt, About: "component id"},
						{Name: "componentname", Kind: FlagText, About: "substring of a component name"},
					},
					Exclusive: []string{"componentid", "componentname"},
					build: func(v values) Invocation {
						if v.has("componentid") {
							return EntitiesFindByComponentID{ID: v.num("componentid")}
						}
						return EntitiesFindByComponentName{Name: v.text("componentname")}
					},
				},
			},
		},
		{
			Name:  "resources",
			About: "inspect resources",
			Subcommands: []*Node{
				{
					Name:  "list",
					About: "list resource names",
					build: func(values) Invocation { return ResourcesList{} },
				},
			},
		},
		{
			Name:  "reflect",
			About: "inspect reflected host types",
			Subcommands: []*Node{
				{
					Name:  "list",
					About: "list registered type names",
					build: func(values) Invocation { return ReflectList{} },
				},
			},
		},
		{
			Name:  "help",
			About: "print usage for a command",
		},
	},
}

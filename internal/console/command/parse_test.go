package command

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want Invocation
	}{
		{"resume", Resume{}},
		{"quit", Quit{}},
		{"counts", Counts{}},
		{"COUNTS", Counts{}},
		{"archetypes list", ArchetypesList{}},
		{"archetypes info --id 0", ArchetypeInfo{ID: 0}},
		{"archetypes info --id=12", ArchetypeInfo{ID: 12}},
		{"archetypes find --componentid 3", ArchetypesFindByComponentID{ID: 3}},
		{"archetypes find --componentname Position", ArchetypesFindByComponentName{Name: "Position"}},
		{"archetypes find --entityid 9", ArchetypesFindByEntityID{ID: 9}},
		{"components list", ComponentsList{}},
		{"components list --long", ComponentsList{Long: true}},
		{"components list --filter Veloc --long", ComponentsList{Filter: "Veloc", Long: true}},
		{"  components   list   --filter   Veloc ", ComponentsList{Filter: "Veloc"}},
		{"components info --id 2", ComponentInfoByID{ID: 2}},
		{"components info --name pkg::Velocity", ComponentInfoByName{Name: "pkg::Velocity"}},
		{"entities list", EntitiesList{}},
		{"entities find --componentid 1", EntitiesFindByComponentID{ID: 1}},
		{"entities find --componentname Vel", EntitiesFindByComponentName{Name: "Vel"}},
		{"resources list", ResourcesList{}},
		{"reflect list", ReflectList{}},
		{"help", Help{Path: []string{}}},
		{"help components info", Help{Path: []string{"components", "info"}}},
		{"-h", Help{}},
		{"archetypes --help", Help{Path: []string{"archetypes"}}},
		{"archetypes find -h", Help{Path: []string{"archetypes", "find"}}},
		{"archetypes find --entityid 1 --entityid 2 --help", Help{Path: []string{"archetypes", "find"}}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := ParseLine(tc.line)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		line string
		kind ErrorKind
		path []string
	}{
		{"", ErrEmpty, nil},
		{"frobnicate", ErrUnknownCommand, nil},
		{"archetypes", ErrMissingSubcommand, []string{"archetypes"}},
		{"archetypes drop", ErrUnknownCommand, []string{"archetypes"}},
		{"archetypes info", ErrMissingRequired, []string{"archetypes", "info"}},
		{"archetypes info --id", ErrMissingValue, []string{"archetypes", "info"}},
		{"archetypes info --id x", ErrInvalidValue, []string{"archetypes", "info"}},
		{"archetypes info --id -1", ErrInvalidValue, []string{"archetypes", "info"}},
		{"archetypes info --id 1 --id 2", ErrDuplicateFlag, []string{"archetypes", "info"}},
		{"archetypes find", ErrMissingRequired, []string{"archetypes", "find"}},
		{"archetypes find --componentid 1 --entityid 2", ErrConflict, []string{"archetypes", "find"}},
		{"components info --id 1 --name Pos", ErrConflict, []string{"components", "info"}},
		{"components list --filter", ErrMissingValue, []string{"components", "list"}},
		{"components list --filter --long", ErrMissingValue, []string{"components", "list"}},
		{"components list --filter=", ErrMissingValue, []string{"components", "list"}},
		{"archetypes info --id=", ErrMissingValue, []string{"archetypes", "info"}},
		{"components list --long=yes", ErrUnexpectedArgument, []string{"components", "list"}},
		{"components list --verbose", ErrUnknownFlag, []string{"components", "list"}},
		{"entities list extra", ErrUnexpectedArgument, []string{"entities", "list"}},
		{"resume now", ErrUnexpectedArgument, []string{"resume"}},
		{"help nothing", ErrUnknownCommand, nil},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			inv, err := ParseLine(tc.line)
			if inv != nil {
				t.Errorf("invocation = %#v, want nil", inv)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if pe.Kind != tc.kind {
				t.Errorf("kind = %v, want %v", pe.Kind, tc.kind)
			}
			if !reflect.DeepEqual(pe.Path, tc.path) {
				t.Errorf("path = %v, want %v", pe.Path, tc.path)
			}
			if !strings.Contains(pe.Usage(), "USAGE:") {
				t.Errorf("usage missing:\n%s", pe.Usage())
			}
		})
	}
}

func TestUsage(t *testing.T) {
	got, err := Usage([]string{"archetypes", "find"})
	if err != nil {
		t.Fatal(err)
	}
	want := "archetypes find - find archetypes by component or entity\n\n" +
		"USAGE:\n" +
		"    archetypes find (--componentid <int> | --componentname <text> | --entityid <int>)\n\n" +
		"OPTIONS:\n" +
		"    --componentid <int>       component id\n" +
		"    --componentname <text>    unique substring of a component name\n" +
		"    --entityid <int>          entity index\n" +
		"    -h, --help                print help\n"
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	got, _ = Usage([]string{"components", "list"})
	if !strings.Contains(got, "    components list [--filter <text>] [--long]\n") {
		t.Errorf("optional flags not bracketed:\n%s", got)
	}

	got, _ = Usage(nil)
	for _, cmd := range []string{"resume", "quit", "counts", "archetypes", "components", "entities", "resources", "reflect", "help"} {
		if !strings.Contains(got, "\n    "+cmd+" ") {
			t.Errorf("top-level usage misses %q:\n%s", cmd, got)
		}
	}
	if _, err := Usage([]string{"bogus"}); err == nil {
		t.Error("unknown path should fail")
	}
}

func TestEveryLeafBuilds(t *testing.T) {
	var walk func(path []string, n *Node)
	walk = func(path []string, n *Node) {
		if len(n.Subcommands) == 0 && n.Name != "help" && n.build == nil {
			t.Errorf("%v has neither subcommands nor a builder", path)
		}
		for _, s := range n.Subcommands {
			walk(append(append([]string(nil), path...), s.Name), s)
		}
	}
	walk(nil, Grammar())
}

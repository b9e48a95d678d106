// Command weave-demo walks a Weave through the lifecycle, component,
// deletion, shape, and search scenarios used to validate the library, and
// prints each step's observable result.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/weave-run/weave"
)

type cli struct {
	Scenario string `help:"Scenario to run (all, lifecycle, component, cascade, search, orphan, schema)." default:"all" enum:"all,lifecycle,component,cascade,search,orphan,schema"`
}

func main() {
	var c cli
	kong.Parse(&c, kong.Description("Runs the Weave's reference scenarios against a fresh in-memory store."))

	runners := map[string]func(){
		"lifecycle": scenarioLifecycle,
		"component": scenarioComponent,
		"cascade":   scenarioCascade,
		"search":    scenarioSearch,
		"orphan":    scenarioOrphan,
		"schema":    scenarioSchema,
	}

	if c.Scenario == "all" {
		for _, name := range []string{"lifecycle", "component", "cascade", "search", "orphan", "schema"} {
			fmt.Printf("=== %s ===\n", name)
			runners[name]()
		}
		return
	}
	runners[c.Scenario]()
}

func scenarioLifecycle() {
	w := weave.New()
	defer w.Close()

	a := w.NewKnot()
	b := w.NewKnot()
	c := w.NewArrow(a, b)
	fmt.Printf("IsArrow(c)=%v IsMark(c)=%v\n", w.IsArrow(c), w.IsMark(c))

	w.ChangeSource(c, c)
	fmt.Printf("after ChangeSource(c,c): IsArrow(c)=%v IsMark(c)=%v\n", w.IsArrow(c), w.IsMark(c))

	w.DeleteCascade(&c)
	fmt.Printf("after DeleteCascade: IsNil(c)=%v\n", w.IsNil(c))
}

func scenarioComponent() {
	w := weave.New()
	defer w.Close()

	w.DefineData("Test", []weave.DataField{
		{Name: "i", Type: weave.IntDatatype},
		{Name: "b", Type: weave.BoolDatatype},
		{Name: "s", Type: weave.StringDatatype},
		{Name: "f", Type: weave.FloatDatatype},
		{Name: "z", Type: weave.StringDatatype},
	})

	k := w.NewKnot()
	w.AddComponent(k, "Test", []any{int64(13), true, "hello", 3.14, "world"})
	fmt.Printf("HasComponent before remove: %v\n", w.HasComponent(k, "Test"))

	c, _ := w.GetComponent(k, "Test")
	i, _ := c.Int("i")
	b, _ := c.Bool("b")
	s, _ := c.String("s")
	f, _ := c.Float("f")
	z, _ := c.String("z")
	fmt.Printf("i=%d b=%v s=%q f=%v z=%q\n", i, b, s, f, z)

	w.RemoveComponent(k, "Test")
	fmt.Printf("HasComponent after remove: %v\n", w.HasComponent(k, "Test"))
}

func scenarioCascade() {
	w := weave.New()
	defer w.Close()

	x := w.NewKnot()
	y := w.NewKnot()
	w.NewArrow(x, y)
	w.NewArrow(y, x)

	first := w.Arrows([]weave.EntityId{x})
	second := w.Arrows(first)
	fmt.Printf("Arrows({x}) len=%d, Arrows(Arrows({x})) len=%d (same set: %v)\n",
		len(first), len(second), sameSet(first, second))
}

func sameSet(a, b []weave.EntityId) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[weave.EntityId]struct{}, len(a))
	for _, h := range a {
		set[h] = struct{}{}
	}
	for _, h := range b {
		if _, ok := set[h]; !ok {
			return false
		}
	}
	return true
}

func scenarioSearch() {
	w := weave.New()
	defer w.Close()

	hp := w.NewKnot()
	p1, p2, p3 := w.NewKnot(), w.NewKnot(), w.NewKnot()
	w.NewArrow(p1, p2)
	w.NewArrow(p1, p3)
	w.NewArrow(p2, p3)
	w.Hoist(hp, []weave.EntityId{p1, p2, p3})

	ht := w.NewKnot()
	t1, t2, t3, t4 := w.NewKnot(), w.NewKnot(), w.NewKnot(), w.NewKnot()
	w.NewArrow(t1, t2)
	w.NewArrow(t1, t3)
	w.NewArrow(t2, t3)
	w.NewArrow(t3, t2)
	w.NewArrow(t2, t4)
	w.NewArrow(t3, t4)
	w.Hoist(ht, []weave.EntityId{t1, t2, t3, t4})

	matches := w.FindAll(hp, ht)
	fmt.Printf("FindAll found %d matches\n", len(matches))
	if _, ok := w.FindOne(hp, ht); ok {
		fmt.Println("FindOne succeeded")
	}
}

func scenarioOrphan() {
	w := weave.New()
	defer w.Close()

	a := w.NewKnot()
	r := w.NewArrow(a, a)

	fmt.Printf("DeleteOrphan(&a) while referenced: %v\n", w.DeleteOrphan(&a))
	w.DeleteCascade(&a)
	fmt.Printf("after DeleteCascade: IsNil(a)=%v IsValid(r)=%v\n", w.IsNil(a), w.IsValid(r))
}

func scenarioSchema() {
	w := weave.New()
	defer w.Close()

	first := w.DefineData("X", []weave.DataField{{Name: "a", Type: weave.IntDatatype}})
	second := w.DefineData("X", []weave.DataField{{Name: "b", Type: weave.FloatDatatype}})
	fmt.Printf("first DefineData(X)=%v second DefineData(X)=%v\n", first, second)

	if os.Getenv("WEAVE_DEMO_VERBOSE") != "" {
		field, _ := w.GetDataField("X", 0)
		fmt.Printf("X field 0: %+v\n", field)
	}
}

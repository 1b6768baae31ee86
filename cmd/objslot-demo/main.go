// Command objslot-demo walks through the lifetime of pooled meshes: creation,
// shared ownership, release and scope teardown.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fulldump/goconfig"

	"github.com/hupe1980/objslot"
	"github.com/hupe1980/objslot/registry"
)

type Config struct {
	MaxCapacity int    `usage:"maximum number of live meshes, 0 for unbounded"`
	LogLevel    string `usage:"log level: debug | info | warn | error"`
	JSON        bool   `usage:"emit JSON logs"`
	ShowConfig  bool   `usage:"print config"`
	ShowStats   bool   `usage:"print pool stats before exit"`
}

type Mesh struct {
	Name        string
	VertexCount uint32
}

// Draw prints the mesh.
func (m *Mesh) Draw() {
	fmt.Println("draw:", m.Name)
}

func main() {
	c := Config{
		LogLevel:  "warn",
		ShowStats: true,
	}
	goconfig.Read(&c)

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		_ = e.Encode(c)
	}

	level, err := parseLevel(c.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := objslot.NewTextLogger(level)
	if c.JSON {
		logger = objslot.NewJSONLogger(level)
	}

	metrics := &objslot.BasicMetricsCollector{}
	reg := registry.New(
		registry.WithLogger(logger),
		registry.WithPoolOptions(
			objslot.WithMaxCapacity(c.MaxCapacity),
			objslot.WithMetricsCollector(metrics),
		),
	)

	run(reg)

	if c.ShowStats {
		s := registry.PoolFor[Mesh](reg).Stats()
		m := metrics.GetStats()
		fmt.Printf("\nlive=%d capacity=%d free=%d created=%d removed=%d rejected=%d\n",
			s.Count, s.Capacity, s.FreeSlots, m.CreateCount, m.RemoveCount, m.RejectedCount)
	}
}

func run(reg *registry.Registry) {
	box := registry.Create(reg, Mesh{Name: "Box", VertexCount: 8})
	sphere := registry.Create(reg, Mesh{Name: "Sphere", VertexCount: 482})
	defer sphere.Release() // released at the end of the scope

	if !box.IsValid() || !sphere.IsValid() {
		fmt.Println("pool full, mesh rejected")
	}

	box.SetOnDestroy(func() { fmt.Println("Box destroyed") })
	sphere.SetOnDestroy(func() { fmt.Println("Sphere destroyed") })

	fmt.Println("=== clone ===")
	boxCopy := box.Clone()
	fmt.Println("box use count:", box.UseCount())
	if m := boxCopy.Get(); m != nil {
		m.Draw()
	}

	weak := box.Weak()

	fmt.Println("\n=== box.Release() ===")
	box.Release()
	fmt.Println("boxCopy use count:", boxCopy.UseCount())
	fmt.Println("weak expired:", weak.IsExpired())

	fmt.Println("\n=== boxCopy.Release() ===")
	boxCopy.Release()
	fmt.Println("weak expired:", weak.IsExpired())

	fmt.Println("\n=== end of scope ===")
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

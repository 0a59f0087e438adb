// Package effects holds the draw routines the host can run. Each routine
// describes one draw and hands it to the executor, so every GPU object it
// needs is gone by the time it returns.
package effects

import (
	"fmt"
	"sort"

	"github.com/richinsley/gldraw/renderer"
)

// Routine draws one effect over a bg clear.
type Routine func(e *renderer.Executor, bg renderer.Color) error

var routines = map[string]Routine{
	"clear":   ClearCanvas,
	"shape":   DrawShape,
	"color":   DrawColorShape,
	"color2":  DrawColorShape2,
	"texture": DrawTexture,
}

// Lookup returns the routine registered under name.
func Lookup(name string) (Routine, error) {
	r, ok := routines[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q (have %v)", name, Names())
	}
	return r, nil
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(routines))
	for name := range routines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Textures lists the asset keys the routines read.
func Textures() []string {
	return []string{DaisyTexture}
}

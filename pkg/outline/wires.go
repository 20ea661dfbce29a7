package outline

import (
	"log"

	"github.com/gohanda11/step-to-dxf/pkg/brep"
)

// boundaryWireIndex returns the index of the wire with the greatest
// arc length; that wire is the face's outer boundary and every other
// wire is a hole. A wire whose length cannot be computed counts as
// zero. Equal lengths resolve to the first wire in input order.
func boundaryWireIndex(wires []brep.Wire) int {
	best := 0
	bestLen := -1.0
	for i, w := range wires {
		length, err := w.Length()
		if err != nil {
			log.Printf("outline: wire %d length failed: %v", i+1, err)
			length = 0
		}
		if length > bestLen {
			bestLen = length
			best = i
		}
	}
	return best
}

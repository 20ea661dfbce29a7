package dxfout

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
)

// WriteTestDrawing emits a fixed diagnostic drawing: a square, a
// circle, construction axes, and labels. Opening it in a CAD viewer
// verifies the export toolchain end to end without needing an
// exchange file. Returns the entity count.
func WriteTestDrawing(path string) (int, error) {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer("GEOMETRY", dxfcolor.Red, dxf.DefaultLineType, true); err != nil {
		return 0, fmt.Errorf("dxfout: add layer: %w", err)
	}
	if _, err := d.AddLayer("CONSTRUCTION", dxfcolor.ColorNumber(8), dxf.DefaultLineType, false); err != nil {
		return 0, fmt.Errorf("dxfout: add layer: %w", err)
	}
	if _, err := d.AddLayer("TEXT", dxfcolor.Green, dxf.DefaultLineType, false); err != nil {
		return 0, fmt.Errorf("dxfout: add layer: %w", err)
	}

	entities := 0

	if err := d.ChangeLayer("GEOMETRY"); err != nil {
		return 0, err
	}
	if _, err := d.LwPolyline(true,
		[]float64{-25, -25}, []float64{25, -25}, []float64{25, 25}, []float64{-25, 25}); err != nil {
		return 0, err
	}
	entities++
	if _, err := d.Circle(0, 0, 0, 15); err != nil {
		return 0, err
	}
	entities++

	if err := d.ChangeLayer("CONSTRUCTION"); err != nil {
		return 0, err
	}
	if _, err := d.Line(-50, 0, 0, 50, 0, 0); err != nil {
		return 0, err
	}
	entities++
	if _, err := d.Line(0, -50, 0, 0, 50, 0); err != nil {
		return 0, err
	}
	entities++

	if err := d.ChangeLayer("TEXT"); err != nil {
		return 0, err
	}
	if _, err := d.Text("TEST DXF - export toolchain working", 0, -40, 0, 3); err != nil {
		return 0, err
	}
	entities++
	if _, err := d.Text("Generated by step-to-dxf", 0, 35, 0, 2); err != nil {
		return 0, err
	}
	entities++

	if err := d.SaveAs(path); err != nil {
		return 0, fmt.Errorf("dxfout: save %s: %w", path, err)
	}
	return entities, nil
}

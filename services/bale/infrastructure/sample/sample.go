// Package sample provides the bundled bale layout used as a fallback when the
// repository cannot be reached, and as seed data for the demo warehouse.
package sample

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ghuser/baleyard/services/bale/domain/models"
)

//go:embed bales.yaml
var bundled []byte

// namespace derives stable bale ids from warehouse and code number, so that the
// same sample bale has the same id across restarts and after seeding.
var namespace = uuid.MustParse("6f1c2a4e-93b7-4d0a-8a51-0d3f1e2b7c90")

type document struct {
	Warehouses []warehouseDoc `yaml:"warehouses"`
}

type warehouseDoc struct {
	ID     string     `yaml:"id"`
	Stacks []stackDoc `yaml:"stacks"`
}

type stackDoc struct {
	Position struct {
		X float64 `yaml:"x"`
		Z float64 `yaml:"z"`
	} `yaml:"position"`
	Bales []baleDoc `yaml:"bales"`
}

type baleDoc struct {
	Code        string  `yaml:"code"`
	Vehicle     string  `yaml:"vehicle"`
	Container   string  `yaml:"container"`
	Warehouse   string  `yaml:"warehouse"`
	Supplier    string  `yaml:"supplier"`
	Weight      float64 `yaml:"weight"`
	Count       int     `yaml:"count"`
	Arrival     string  `yaml:"arrival"`
	Orientation string  `yaml:"orientation"`
}

// Dataset is a parsed sample layout keyed by warehouse.
type Dataset struct {
	warehouses map[string][]stackDoc
}

// Bundled parses the layout compiled into the binary.
func Bundled() (*Dataset, error) {
	return Parse(bundled)
}

// Parse decodes a YAML layout document.
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sample layout: %w", err)
	}
	ds := &Dataset{warehouses: make(map[string][]stackDoc, len(doc.Warehouses))}
	for _, wh := range doc.Warehouses {
		if wh.ID == "" {
			return nil, fmt.Errorf("sample layout: warehouse without id")
		}
		ds.warehouses[wh.ID] = wh.Stacks
	}
	return ds, nil
}

// Has reports whether the dataset contains a layout for the warehouse.
func (d *Dataset) Has(warehouseID string) bool {
	_, ok := d.warehouses[warehouseID]
	return ok
}

// ForWarehouse builds fresh bale records for the warehouse, stacks in document
// order and bales bottom-up. It returns false when the warehouse is unknown.
func (d *Dataset) ForWarehouse(warehouseID string, dims models.Dimensions) ([]*models.Bale, bool, error) {
	stacks, ok := d.warehouses[warehouseID]
	if !ok {
		return nil, false, nil
	}

	var out []*models.Bale
	for _, s := range stacks {
		for level, bd := range s.Bales {
			o, err := models.ParseOrientation(bd.Orientation)
			if err != nil {
				return nil, true, fmt.Errorf("sample bale %s: %w", bd.Code, err)
			}
			pos := models.Position{X: s.Position.X, Y: dims.RestingY(level), Z: s.Position.Z}
			b := models.NewBale(ID(warehouseID, bd.Code), warehouseID, pos, o)
			b.CodeNumber = models.CodeNumber(bd.Code)
			b.VehicleNumber = bd.Vehicle
			b.ContainerNumber = bd.Container
			b.WarehouseNumber = bd.Warehouse
			if b.WarehouseNumber == "" {
				b.WarehouseNumber = warehouseID
			}
			b.Supplier = bd.Supplier
			b.TotalWeight = bd.Weight
			b.BaleCount = bd.Count
			if bd.Arrival != "" {
				t, err := time.Parse(time.DateOnly, bd.Arrival)
				if err != nil {
					return nil, true, fmt.Errorf("sample bale %s: arrival: %w", bd.Code, err)
				}
				b.ArrivalDate = t
			}
			out = append(out, b)
		}
	}
	return out, true, nil
}

// ID returns the deterministic id of a sample bale.
func ID(warehouseID, code string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(warehouseID+"/"+code))
}

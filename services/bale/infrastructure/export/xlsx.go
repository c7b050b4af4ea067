// Package export renders a warehouse layout as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/baleyard/services/bale/domain/models"
	domainsvcs "github.com/ghuser/baleyard/services/bale/domain/services"
)

// SheetName is the worksheet holding one row per bale.
const SheetName = "Layout"

var header = []any{
	"Stack", "X", "Z", "Level", "Code", "Vehicle", "Container",
	"Supplier", "Arrival", "Weight", "Bales", "Orientation",
}

// WriteLayoutXLSX writes the layout as an XLSX workbook, one row per bale,
// stacks in layout order and bales bottom-up.
func WriteLayoutXLSX(w io.Writer, warehouseID string, layout []domainsvcs.StackLayout, dims models.Dimensions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Bale layout " + warehouseID,
		Creator: "baleyard",
	}); err != nil {
		return fmt.Errorf("set doc props: %w", err)
	}

	if err := setRow(f, 1, header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	row := 2
	for _, s := range layout {
		for _, b := range s.Bales {
			arrival := ""
			if !b.ArrivalDate.IsZero() {
				arrival = b.ArrivalDate.Format("2006-01-02")
			}
			if err := setRow(f, row, []any{
				s.Number, s.Key.X, s.Key.Z, dims.LevelOf(b.Position.Y) + 1,
				b.CodeNumber.String(), b.VehicleNumber, b.ContainerNumber,
				b.Supplier, arrival, b.TotalWeight, b.BaleCount, b.Orientation.String(),
			}); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell reference: %w", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

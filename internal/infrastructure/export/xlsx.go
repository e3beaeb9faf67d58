package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

const sheetName = "Extraction"

// XLSXExporter writes an extraction result as a two-column worksheet, in
// field order, with unavailable values rendered the same way the console
// shows them.
type XLSXExporter struct{}

func NewXLSX() *XLSXExporter {
	return &XLSXExporter{}
}

func (XLSXExporter) Export(result domain.ExtractionResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetCellValue(sheetName, "A1", "Field"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellValue(sheetName, "B1", "Value"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, field := range result.Fields {
		row := i + 2
		nameCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, nameCell, field.DisplayName()); err != nil {
			return fmt.Errorf("write field %q: %w", field.Name, err)
		}
		if err := f.SetCellValue(sheetName, valueCell, field.DisplayValue()); err != nil {
			return fmt.Errorf("write value for %q: %w", field.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

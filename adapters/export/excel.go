package export

import (
	"github.com/xuri/excelize/v2"

	"trialintel/domain/trial"
	"trialintel/internal/errors"
)

const trialsSheet = "Stopped Trials"

// WriteExcel writes records to an xlsx workbook with the same columns as the
// CSV export, for analysts who live in spreadsheets.
func WriteExcel(path string, records []trial.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(trialsSheet)
	if err != nil {
		return errors.ExportError("failed to create worksheet", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for i, name := range csvColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(trialsSheet, cell, name); err != nil {
			return errors.ExportError("failed to write header cell", err)
		}
	}

	for rowIdx, r := range records {
		for c, value := range csvRow(r) {
			cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx+2)
			if err := f.SetCellValue(trialsSheet, cell, value); err != nil {
				return errors.ExportError("failed to write data cell", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportError("failed to save workbook", err)
	}
	return nil
}

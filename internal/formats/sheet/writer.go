package sheet

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/FocuswithJustin/tabular/core/errors"
)

// WriteOptions controls workbook output. Immutable after construction.
type WriteOptions struct {
	// Sheet is the worksheet name. Empty uses the workbook default.
	Sheet string
}

// Write builds a single-sheet workbook and writes it to w. valuesAt is
// invoked once per row index in order; its error aborts the write before
// any bytes are produced, because the workbook is only serialized at the
// end.
func Write(w io.Writer, names []string, includeHeader bool, rowCount int, valuesAt func(int) ([]string, error), opts WriteOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if sheet != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
			return errors.NewIO("write", "xlsx sheet", err)
		}
	}

	line := 1
	if includeHeader && len(names) > 0 {
		if err := setRow(f, sheet, line, names); err != nil {
			return err
		}
		line++
	}
	for i := 0; i < rowCount; i++ {
		values, err := valuesAt(i)
		if err != nil {
			return err
		}
		if err := setRow(f, sheet, line, values); err != nil {
			return err
		}
		line++
	}

	if err := f.Write(w); err != nil {
		return errors.NewIO("write", "xlsx workbook", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, line int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return errors.NewIO("write", "xlsx cell", err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return errors.NewIO("write", "xlsx row", err)
	}
	return nil
}

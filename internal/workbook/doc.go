// Package workbook reads spreadsheet workbooks into in-memory tables.
//
// A Source is an opened workbook. Its sheets are listed in the order the
// workbook declares them and are loaded by name or by 0-based position:
//
//	src, err := workbook.Open("data/load.xlsx")
//	if err != nil {
//	    return err // SOURCE_NOT_FOUND or SOURCE_INVALID
//	}
//	defer src.Close()
//	sheet, err := src.Sheet(workbook.ByName("Alpha"))
//
// .xlsx/.xlsm files are read with excelize using raw cell values, so dated
// cells arrive as Excel serial numbers. Legacy .xls files are read with
// extrame/xls, which pre-formats dated cells as text.
//
// The first row of a sheet is its header. Blank header cells are named
// "Unnamed: N" and repeated names get ".1", ".2" suffixes. Fully blank data
// rows are dropped. Every loaded row is padded to the header width.
//
// All failures are *errors.AppError values carrying SOURCE_NOT_FOUND,
// SOURCE_INVALID or SHEET_NOT_FOUND.
package workbook

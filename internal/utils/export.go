package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"cosmosync/internal/models"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "Fetched At", "Source URL", "Latitude", "Longitude", "Velocity", "Altitude"}

// PositionsCSV выгружает сэмплы позиции в CSV.
func PositionsCSV(positions []*models.PositionLog) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}

	for _, p := range positions {
		row := []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.FetchedAt.Format("2006-01-02 15:04:05"),
			p.SourceURL,
		}
		row = append(row, exportFields(p.Payload)...)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PositionsXLSX собирает книгу Excel с теми же колонками.
func PositionsXLSX(positions []*models.PositionLog) ([]byte, error) {
	const sheet = "Positions"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for rowIdx, p := range positions {
		rowNum := rowIdx + 2 // заголовок в первой строке

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), p.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), p.FetchedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), p.SourceURL)

		for i, value := range exportFields(p.Payload) {
			cell, _ := excelize.CoordinatesToCellName(i+4, rowNum)
			f.SetCellValue(sheet, cell, value)
		}
	}

	for i := 1; i <= len(exportHeaders); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheet, colName, colName, 20)
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportFields достает lat/lon/velocity/altitude из пэйлоада;
// отсутствующие значения остаются пустыми колонками.
func exportFields(payload []byte) []string {
	fields := make([]string, 4)

	var data map[string]interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return fields
	}

	for i, key := range []string{"latitude", "longitude", "velocity", "altitude"} {
		switch v := data[key].(type) {
		case float64:
			fields[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			fields[i] = v
		}
	}
	return fields
}

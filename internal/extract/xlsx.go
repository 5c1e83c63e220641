// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSX reads every worksheet of an Office Open XML workbook. Each row
// becomes one line of tab-separated cell values; sheets are separated by a
// blank line.
type XLSX struct{}

func (XLSX) Name() string { return "xlsx" }

func (XLSX) Extract(_ context.Context, path string) ([]byte, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	var sheets []string
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q of %s: %w", name, path, err)
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			if line := strings.Join(row, "\t"); strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			sheets = append(sheets, strings.Join(lines, "\n"))
		}
	}
	return []byte(strings.Join(sheets, "\n\n")), nil
}

package assessment

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Exchange-catalog upload parsing. A tabular file (XLSX or CSV) with columns
// group, name, kcal, carb, protein, fat, portion overrides the per-portion
// content of any of the seven groups: rows are grouped by group name, the
// numeric columns averaged, and the food names collected as examples.

var requiredCatalogColumns = []string{"group", "name", "kcal", "carb", "protein", "fat", "portion"}

// catalogGroupAliases maps upload group spellings onto canonical group ids.
var catalogGroupAliases = map[string]string{
	"vegetables":   GroupVegetables,
	"vegetable":    GroupVegetables,
	"fruits":       GroupFruits,
	"fruit":        GroupFruits,
	"grains":       GroupGrains,
	"grain":        GroupGrains,
	"cereals":      GroupGrains,
	"legumes":      GroupLegumes,
	"legume":       GroupLegumes,
	"dairy":        GroupDairy,
	"lean-protein": GroupLeanProtein,
	"lean protein": GroupLeanProtein,
	"protein":      GroupLeanProtein,
	"proteins":     GroupLeanProtein,
	"fats":         GroupFats,
	"fat":          GroupFats,
}

// ParseCatalogUpload parses an uploaded catalog file, dispatching on the
// file extension. Only groups present in the upload are returned; the
// caller merges them over the default catalog.
func ParseCatalogUpload(filename string, data []byte) (Catalog, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseCatalogXLSX(data)
	case ".csv":
		return parseCatalogCSV(data)
	}
	return nil, fmt.Errorf("unsupported catalog file type: %s", filepath.Ext(filename))
}

func parseCatalogXLSX(data []byte) (Catalog, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return catalogFromRows(rows)
}

func parseCatalogCSV(data []byte) (Catalog, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return catalogFromRows(rows)
}

// catalogFromRows validates the header, then groups and averages the data
// rows. Rows naming an unrecognized group, and rows with unparsable numeric
// cells, are skipped.
func catalogFromRows(rows [][]string) (Catalog, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog file has no data rows")
	}

	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range requiredCatalogColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("catalog file missing column %q", want)
		}
	}

	cell := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	type accum struct {
		n                        int
		kcal, carb, protein, fat float64
		portion                  string
		examples                 []string
	}
	groups := make(map[string]*accum)

	for _, row := range rows[1:] {
		group, ok := catalogGroupAliases[strings.ToLower(cell(row, "group"))]
		if !ok {
			continue
		}
		kcal, err1 := strconv.ParseFloat(cell(row, "kcal"), 64)
		carb, err2 := strconv.ParseFloat(cell(row, "carb"), 64)
		protein, err3 := strconv.ParseFloat(cell(row, "protein"), 64)
		fat, err4 := strconv.ParseFloat(cell(row, "fat"), 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		a := groups[group]
		if a == nil {
			a = &accum{}
			groups[group] = a
		}
		a.n++
		a.kcal += kcal
		a.carb += carb
		a.protein += protein
		a.fat += fat
		if a.portion == "" {
			a.portion = cell(row, "portion")
		}
		if name := cell(row, "name"); name != "" {
			a.examples = append(a.examples, name)
		}
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("catalog file has no recognizable groups")
	}

	cat := make(Catalog, len(groups))
	for g, a := range groups {
		n := float64(a.n)
		cat[g] = ExchangeItem{
			Kcal:     round1(a.kcal / n),
			CarbG:    round1(a.carb / n),
			ProteinG: round1(a.protein / n),
			FatG:     round1(a.fat / n),
			Portion:  a.portion,
			Examples: a.examples,
		}
	}
	return cat, nil
}

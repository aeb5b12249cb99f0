package assessment

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const catalogCSV = `group,name,kcal,carb,protein,fat,portion
Fruits,mango,70,17,1,0,1 small piece
Fruits,banana,90,23,1,0,1/2 unit
Grains,quinoa,110,20,4,2,1/2 cup cooked
`

func TestParseCatalogUploadCSV(t *testing.T) {
	cat, err := ParseCatalogUpload("catalog.csv", []byte(catalogCSV))
	if err != nil {
		t.Fatalf("ParseCatalogUpload() error = %v", err)
	}

	fruits, ok := cat[GroupFruits]
	if !ok {
		t.Fatal("fruits group missing")
	}
	// Two fruit rows averaged: kcal (70+90)/2, carbs (17+23)/2.
	if fruits.Kcal != 80 || fruits.CarbG != 20 {
		t.Errorf("fruits = %v kcal / %v g carb, want 80 / 20", fruits.Kcal, fruits.CarbG)
	}
	if fruits.Portion != "1 small piece" {
		t.Errorf("fruits portion = %q", fruits.Portion)
	}
	if len(fruits.Examples) != 2 {
		t.Errorf("fruits examples = %v, want 2 names", fruits.Examples)
	}

	grains, ok := cat[GroupGrains]
	if !ok {
		t.Fatal("grains group missing")
	}
	if grains.Kcal != 110 || grains.ProteinG != 4 {
		t.Errorf("grains = %v kcal / %v g protein", grains.Kcal, grains.ProteinG)
	}

	// Only uploaded groups appear in the override.
	if _, ok := cat[GroupDairy]; ok {
		t.Error("dairy should not be in the override")
	}
}

func TestParseCatalogUploadCaseInsensitiveHeader(t *testing.T) {
	csv := "GROUP,Name,KCAL,Carb,Protein,Fat,Portion\nfruits,kiwi,55,13,1,0,1 unit\n"
	cat, err := ParseCatalogUpload("upper.csv", []byte(csv))
	if err != nil {
		t.Fatalf("ParseCatalogUpload() error = %v", err)
	}
	if cat[GroupFruits].Kcal != 55 {
		t.Errorf("fruits kcal = %v, want 55", cat[GroupFruits].Kcal)
	}
}

func TestParseCatalogUploadMissingColumn(t *testing.T) {
	csv := "group,name,kcal\nFruits,mango,70\n"
	if _, err := ParseCatalogUpload("bad.csv", []byte(csv)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestParseCatalogUploadSkipsBadRows(t *testing.T) {
	csv := "group,name,kcal,carb,protein,fat,portion\n" +
		"Fruits,mango,not-a-number,17,1,0,1 piece\n" +
		"Martian food,rock,70,17,1,0,1 piece\n" +
		"Fruits,banana,90,23,1,0,1/2 unit\n"
	cat, err := ParseCatalogUpload("mixed.csv", []byte(csv))
	if err != nil {
		t.Fatalf("ParseCatalogUpload() error = %v", err)
	}
	// Only the valid banana row survives.
	if cat[GroupFruits].Kcal != 90 {
		t.Errorf("fruits kcal = %v, want 90", cat[GroupFruits].Kcal)
	}
	if len(cat) != 1 {
		t.Errorf("got %d groups, want 1", len(cat))
	}
}

func TestParseCatalogUploadNoUsableRows(t *testing.T) {
	csv := "group,name,kcal,carb,protein,fat,portion\nUnknown,thing,1,1,1,1,x\n"
	if _, err := ParseCatalogUpload("empty.csv", []byte(csv)); err == nil {
		t.Fatal("expected error when no group is recognizable")
	}
}

func TestParseCatalogUploadUnsupportedExtension(t *testing.T) {
	if _, err := ParseCatalogUpload("catalog.pdf", []byte("junk")); err == nil {
		t.Fatal("expected error for unsupported file type")
	}
}

func TestParseCatalogUploadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"group", "name", "kcal", "carb", "protein", "fat", "portion"},
		{"Vegetables", "kale", 30, 6, 2, 0, "1 cup raw"},
		{"Vegetables", "zucchini", 20, 4, 2, 0, "1/2 cup cooked"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	cat, err := ParseCatalogUpload("catalog.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("ParseCatalogUpload() error = %v", err)
	}
	veg := cat[GroupVegetables]
	if veg.Kcal != 25 || veg.CarbG != 5 {
		t.Errorf("vegetables = %v kcal / %v g carb, want 25 / 5", veg.Kcal, veg.CarbG)
	}
	if !strings.Contains(strings.Join(veg.Examples, ","), "kale") {
		t.Errorf("examples = %v, want kale listed", veg.Examples)
	}
}

func TestParseCatalogUploadMalformedXLSX(t *testing.T) {
	if _, err := ParseCatalogUpload("catalog.xlsx", []byte("this is not a workbook")); err == nil {
		t.Fatal("expected error for malformed workbook")
	}
}

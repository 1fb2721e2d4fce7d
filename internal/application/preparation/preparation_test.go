package preparation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

const contractsCSV = `id;type;energy;usage;startdate;enddate;fillingdatecancellation;status;productid;modificationdate;createdat
1;N;power;3650;2023-01-01;;;active;10;2023-01-05 10:00:00;2022-12-15
2;N;power;2000;2022-05-01;2023-02-01;2023-01-10;terminated;10;2023-01-10;2022-04-01
3;N;power;123456789;2022-05-01;;;active;10;2023-01-10;2022-04-01
4;N;power;1500,5;2023-02-01;;;active;2000;2023-02-01;2023-01-20
1;N;power;3650;2023-01-01;;;active;10;2023-01-05 10:00:00;2022-12-15
5;N;gas;;2023-02-01;;;active;10;2023-02-01;2023-01-20
6;N;gas;8000;2023-03-01;;;active;99;2023-03-01;2023-02-20
`

const productsCSV = `id;productcode;productname;energy;consumptiontype;modificationdate
10;P10;Strom Basis;power;HT;2022-01-01
2000;P2000;Legacy;power;HT;2020-01-01
99;P99;Gas Flex;gas;HT;2022-01-01
`

const pricesCSV = `id;productid;pricecomponentid;productcomponent;componentname;price;unit;valid_from;valid_until;modificationdate
1;10;1;workingprice;Arbeitspreis;10;ct/kWh;2023-01-01;2023-12-31;2022-12-01
2;10;2;baseprice;Grundpreis;36,5;EUR/year;2023-01-01;2023-12-31;2022-12-01
3;10;1;workingprice;Arbeitspreis;9;ct/kWh;;2022-12-31;2022-12-01
`

func testSnapshotFiles() []entity.SnapshotFile {
	return []entity.SnapshotFile{
		{Name: "2023-07-01_contracts.csv", Data: []byte(contractsCSV)},
		{Name: "2023-07-01_products.csv", Data: []byte(productsCSV)},
		{Name: "2023-07-01_prices.csv", Data: []byte(pricesCSV)},
		{Name: "2023-07-01_readme.txt", Data: []byte("ignored")},
	}
}

func TestPrepare(t *testing.T) {
	downloadDate := entity.MustParseDate("2023-07-01")
	tables, report, err := NewPreparer(nil, DefaultOptions()).Prepare(testSnapshotFiles(), downloadDate)
	require.NoError(t, err)

	require.Len(t, tables.Contracts, 2)
	c := tables.Contracts[0]
	assert.Equal(t, "1", c.ID)
	assert.Equal(t, 3650.0, c.Usage)
	assert.Equal(t, entity.MustParseDate("2023-01-01"), c.StartDate)
	assert.True(t, c.EndDate.IsZero())
	assert.Equal(t, "10", c.ProductID)
	assert.Equal(t, entity.MustParseDate("2022-12-15"), c.CreatedAt)
	assert.Equal(t, entity.MustParseDate("2023-01-05"), c.ModificationDate)
	assert.Equal(t, downloadDate, c.DownloadDate)
	assert.Equal(t, "6", tables.Contracts[1].ID)

	require.Len(t, tables.Products, 3)
	assert.Equal(t, "10", tables.Products[0].ProductID)
	assert.Equal(t, "Strom Basis", tables.Products[0].ProductName)

	require.Len(t, tables.Prices, 2)
	assert.Equal(t, entity.BasePrice, tables.Prices[1].Component)
	assert.Equal(t, 36.5, tables.Prices[1].Price)
	assert.Equal(t, 1, report.InvalidPrices)

	assert.Equal(t, 7, report.ContractsLoaded)
	assert.Equal(t, []entity.FilterStep{
		{Name: StepUsageOutliers, Before: 7, After: 5},
		{Name: StepDuplicates, Before: 5, After: 4},
		{Name: StepInactive, Before: 4, After: 3},
		{Name: StepExcludedProducts, Before: 3, After: 2},
	}, report.Steps)
	assert.Equal(t, 1, report.UnpricedContracts)
	assert.Equal(t, []string{"2023-07-01_contracts.csv", "2023-07-01_products.csv", "2023-07-01_prices.csv"}, report.Files)
}

func TestPrepare_CustomOptions(t *testing.T) {
	opts := Options{MaxUsage: 3000, ExcludedProductIDs: []string{"99"}}
	tables, _, err := NewPreparer(nil, opts).Prepare(testSnapshotFiles(), entity.MustParseDate("2023-07-01"))
	require.NoError(t, err)

	var ids []string
	for _, c := range tables.Contracts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"4"}, ids)
}

func TestPrepare_MissingTable(t *testing.T) {
	files := testSnapshotFiles()[:2]
	_, _, err := NewPreparer(nil, DefaultOptions()).Prepare(files, entity.MustParseDate("2023-07-01"))
	assert.ErrorIs(t, err, types.ErrMissingTable)
	assert.ErrorContains(t, err, "prices")
}

func TestPrepare_NoFiles(t *testing.T) {
	_, _, err := NewPreparer(nil, DefaultOptions()).Prepare(nil, entity.MustParseDate("2023-07-01"))
	assert.ErrorIs(t, err, types.ErrNoSnapshotFiles)
}

func TestPrepare_MissingColumn(t *testing.T) {
	files := testSnapshotFiles()
	files[0].Data = []byte("id;startdate;enddate;productid\n1;2023-01-01;;10\n")
	_, _, err := NewPreparer(nil, DefaultOptions()).Prepare(files, entity.MustParseDate("2023-07-01"))
	assert.ErrorIs(t, err, errMissingColumn)
	assert.ErrorContains(t, err, "usage")
}

func TestParseTable_CommaDelimited(t *testing.T) {
	tbl, err := parseTable(entity.SnapshotFile{Name: "x.csv", Data: []byte("\xef\xbb\xbfID, ProductName\n7,Öko Strom\n\n")})
	require.NoError(t, err)
	require.Len(t, tbl.records, 1)
	assert.Equal(t, "7", tbl.value(tbl.records[0], "id"))
	assert.Equal(t, "Öko Strom", tbl.value(tbl.records[0], "productname"))
	assert.Equal(t, "", tbl.value(tbl.records[0], "missing"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{"36,5", 36.5, true},
		{"1.234,5", 1234.5, true},
		{"1,234.5", 1234.5, true},
		{" 2.5 ", 2.5, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "2000", normalizeID("2000.0"))
	assert.Equal(t, "A.0", normalizeID("A.0"))
	assert.Equal(t, "17", normalizeID(" 17 "))
}

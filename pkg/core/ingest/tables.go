// Package ingest loads the WHO incidence workbook, the country metadata
// table and the GDP forecast workbook into the in-memory rows the rest of
// the pipeline consumes. The wide year-column spreadsheet layout is
// reshaped to long (code, year, value) form here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"tb_analytics/pkg/models"
)

// IncidenceCell is one (country, year) incidence value reshaped from the
// wide table.
type IncidenceCell struct {
	Code      string
	Year      int
	Incidence float64
}

// ParseWideRows reshapes a wide table (row 0: code, name, year, year, ...;
// one row per country) into long cells, skipping blank and placeholder
// values. Returns the cells and the number of skipped value cells.
func ParseWideRows(rows [][]string) ([]IncidenceCell, int, error) {
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("table has no data rows")
	}

	header := rows[0]
	if len(header) < 3 {
		return nil, 0, fmt.Errorf("header has %d columns, need code, name and at least one year", len(header))
	}
	years := make([]int, len(header))
	for i := 2; i < len(header); i++ {
		y, err := strconv.Atoi(strings.TrimSpace(header[i]))
		if err != nil {
			return nil, 0, fmt.Errorf("header column %d (%q) is not a year: %w", i, header[i], err)
		}
		years[i] = y
	}

	var cells []IncidenceCell
	skipped := 0
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if code == "" {
			continue
		}
		for i := 2; i < len(row) && i < len(header); i++ {
			v, ok := parseValue(row[i])
			if !ok {
				skipped++
				continue
			}
			cells = append(cells, IncidenceCell{Code: code, Year: years[i], Incidence: v})
		}
	}
	return cells, skipped, nil
}

// ParseCountryMetaCSV reads the code,name,region,income_group lookup table.
// Rows whose income group label is not one of the four World Bank tiers are
// skipped (unclassified aggregates appear in the raw data).
func ParseCountryMetaCSV(r io.Reader) (map[string]models.CountryMeta, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading country metadata: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("country metadata has no data rows")
	}

	meta := make(map[string]models.CountryMeta)
	for _, rec := range records[1:] {
		if len(rec) < 4 {
			continue
		}
		group, ok := models.ParseIncomeGroup(strings.TrimSpace(rec[3]))
		if !ok {
			continue
		}
		code := strings.TrimSpace(rec[0])
		meta[code] = models.CountryMeta{
			Code:   code,
			Name:   strings.TrimSpace(rec[1]),
			Region: strings.TrimSpace(rec[2]),
			Group:  group,
		}
	}
	return meta, nil
}

// LoadCountryMeta reads the metadata CSV from disk.
func LoadCountryMeta(path string) (map[string]models.CountryMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open country metadata: %w", err)
	}
	defer f.Close()
	return ParseCountryMetaCSV(f)
}

// Join attaches each incidence cell to its country's income tier, producing
// the historical observation set. Cells whose code has no metadata row are
// dropped; the drop count is returned for the load summary.
func Join(cells []IncidenceCell, meta map[string]models.CountryMeta) ([]models.Observation, int) {
	var obs []models.Observation
	dropped := 0
	for _, c := range cells {
		m, ok := meta[c.Code]
		if !ok {
			dropped++
			continue
		}
		obs = append(obs, models.Observation{Year: c.Year, Group: m.Group, Incidence: c.Incidence})
	}
	return obs, dropped
}

// BaselineFor returns the most recent observed incidence for one entity,
// the anchor for its projection's first segment.
func BaselineFor(cells []IncidenceCell, code string) (models.Baseline, error) {
	var mine []IncidenceCell
	for _, c := range cells {
		if c.Code == code {
			mine = append(mine, c)
		}
	}
	if len(mine) == 0 {
		return models.Baseline{}, fmt.Errorf("no incidence values for entity %q", code)
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].Year < mine[j].Year })
	last := mine[len(mine)-1]
	return models.Baseline{Year: last.Year, Incidence: last.Incidence}, nil
}

// GDPPointsFor extracts one entity's forecast series from a wide table.
func GDPPointsFor(rows [][]string, code string) ([]models.GDPPoint, error) {
	cells, _, err := ParseWideRows(rows)
	if err != nil {
		return nil, err
	}
	var points []models.GDPPoint
	for _, c := range cells {
		if c.Code == code {
			points = append(points, models.GDPPoint{Year: c.Year, GDP: c.Incidence})
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no GDP forecast rows for entity %q", code)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points, nil
}

// parseValue handles the placeholder cells the raw spreadsheets use for
// missing data.
func parseValue(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" || s == ".." {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

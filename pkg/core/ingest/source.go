package ingest

import (
	"fmt"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"

	"tb_analytics/pkg/models"
)

// FileSource serves the pipeline's tables from local files: the incidence
// workbook (xlsx), the country metadata CSV and the GDP forecast workbook.
// Loaded tables are cached for the lifetime of the source; a run loads each
// file at most once.
type FileSource struct {
	IncidencePath  string
	IncidenceSheet string
	MetaPath       string
	GDPPath        string
	GDPSheet       string

	cells   []IncidenceCell
	skipped int
	meta    map[string]models.CountryMeta
}

// Observations loads and joins the historical incidence and metadata
// tables.
func (s *FileSource) Observations() ([]models.Observation, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	obs, dropped := Join(s.cells, s.meta)
	fmt.Printf("Loaded %d observations (%d missing cells skipped, %d rows without metadata dropped)\n",
		len(obs), s.skipped, dropped)
	return obs, nil
}

// GDPForecast loads one entity's forecast series from the GDP workbook.
func (s *FileSource) GDPForecast(entity string) ([]models.GDPPoint, error) {
	rows, err := readSheet(s.GDPPath, s.GDPSheet)
	if err != nil {
		return nil, err
	}
	return GDPPointsFor(rows, entity)
}

// Baseline returns the entity's most recent historical incidence.
func (s *FileSource) Baseline(entity string) (models.Baseline, error) {
	if err := s.load(); err != nil {
		return models.Baseline{}, err
	}
	return BaselineFor(s.cells, entity)
}

// Meta exposes the country lookup for report display.
func (s *FileSource) Meta() (map[string]models.CountryMeta, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.meta, nil
}

func (s *FileSource) load() error {
	if s.cells != nil && s.meta != nil {
		return nil
	}
	rows, err := readSheet(s.IncidencePath, s.IncidenceSheet)
	if err != nil {
		return err
	}
	cells, skipped, err := ParseWideRows(rows)
	if err != nil {
		return fmt.Errorf("incidence table %s: %w", s.IncidencePath, err)
	}
	meta, err := LoadCountryMeta(s.MetaPath)
	if err != nil {
		return err
	}
	s.cells, s.skipped, s.meta = cells, skipped, meta
	return nil
}

func readSheet(path, sheet string) ([][]string, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if sheet == "" {
		sheet = wb.GetSheetList()[0]
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q in %s: %w", sheet, path, err)
	}
	return rows, nil
}

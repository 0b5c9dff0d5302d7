package brand

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

// Dataset column headers.  The Hips column maps to the "Hip" measurement key.
const (
	colBrand = "Brand"
	colAge   = "Age (Years)"
	colChest = "Chest (cm)"
	colWaist = "Waist (cm)"
	colHips  = "Hips (cm)"
)

// genderMarkerPattern extracts the "(B)"/"(G)" marker some brands embed in
// their row labels.
var genderMarkerPattern = regexp.MustCompile(`\((B|G)\)`)

// Resolver looks up chest/waist/hip reference values for a brand, age, and
// gender.  The dataset file is re-read on every call; there is no caching, so
// edits to the file take effect immediately.  All failures are soft: the
// resolver logs and returns nil, and the caller falls back to prediction.
type Resolver struct {
	datasetPath string
	logger      logging.Logger
}

// NewResolver builds a Resolver over the dataset at datasetPath.
func NewResolver(datasetPath string, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{
		datasetPath: datasetPath,
		logger:      logger.Named("brand"),
	}
}

type row struct {
	brand string
	age   string
	chest string
	waist string
	hips  string
}

// Resolve returns whichever of Chest/Waist/Hip the dataset provides for the
// given brand, age, and gender; keys whose cells are blank or unparseable are
// simply absent.  A nil map means no usable row was found or the dataset was
// unreadable.
func (r *Resolver) Resolve(brandName string, age float64, gender measurement.Gender) map[string]float64 {
	rows, err := r.readDataset()
	if err != nil {
		r.logger.Error("failed to load brand dataset",
			logging.String("path", r.datasetPath),
			logging.Err(err))
		return nil
	}

	filtered := filterByBrand(rows, brandName, gender)

	var matched *row
	for i := range filtered {
		if AgeMatches(filtered[i].age, age) {
			matched = &filtered[i]
			break
		}
	}
	if matched == nil {
		r.logger.Warn("no matching brand measurements",
			logging.String("brand", brandName),
			logging.Float64("age", age))
		return nil
	}

	result := make(map[string]float64, 3)
	if v := ParseRange(matched.chest); v != nil {
		result["Chest"] = *v
	}
	if v := ParseRange(matched.waist); v != nil {
		result["Waist"] = *v
	}
	if v := ParseRange(matched.hips); v != nil {
		result["Hip"] = *v
	}
	return result
}

// filterByBrand selects the dataset rows belonging to brandName.  Brands that
// publish separate boy/girl rows mark them with "(B)"/"(G)" in the brand
// label; for those, rows matching the requested gender's marker are preferred,
// falling back to all of the brand's rows when no marker matches.
func filterByBrand(rows []row, brandName string, gender measurement.Gender) []row {
	lower := strings.ToLower(brandName)

	if strings.Contains(lower, "h&m") {
		marker := "(B)"
		if gender == measurement.Female {
			marker = "(G)"
		}

		var byBrand, byGender []row
		for _, rw := range rows {
			if !strings.Contains(strings.ToLower(rw.brand), "h&m") {
				continue
			}
			byBrand = append(byBrand, rw)
			if genderMarkerPattern.FindString(rw.brand) == marker {
				byGender = append(byGender, rw)
			}
		}
		if len(byGender) > 0 {
			return byGender
		}
		return byBrand
	}

	var filtered []row
	for _, rw := range rows {
		if strings.Contains(strings.ToLower(rw.brand), lower) {
			filtered = append(filtered, rw)
		}
	}
	return filtered
}

// readDataset parses the CSV dataset in source row order.  The file is
// decoded as Latin-1, which accepts any byte sequence without error.
func (r *Resolver) readDataset() ([]row, error) {
	f, err := os.Open(r.datasetPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row{
			brand: field(record, colBrand),
			age:   field(record, colAge),
			chest: field(record, colChest),
			waist: field(record, colWaist),
			hips:  field(record, colHips),
		})
	}
	return rows, nil
}

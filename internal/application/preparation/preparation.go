// Package preparation turns the raw files of one snapshot into the three clean
// tables the revenue engine consumes.
package preparation

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
	"github.com/rpnorth/LichtBlick-Case-Study/internal/shared/types"
)

const (
	// DefaultMaxUsage é o limite superior de consumo anual; acima disso é tratado como outlier.
	DefaultMaxUsage = 1e8
	// DefaultExcludedProductID is the product id that has no price in the export.
	DefaultExcludedProductID = "2000"
)

// Filter step names, as they appear in the preparation report.
const (
	StepUsageOutliers    = "usage outliers"
	StepDuplicates       = "duplicate contracts"
	StepInactive         = "inactive contracts"
	StepExcludedProducts = "excluded products"
)

// Options configures the cleaning filters.
type Options struct {
	MaxUsage           float64
	ExcludedProductIDs []string
}

// DefaultOptions returns the filters used by the stakeholder report.
func DefaultOptions() Options {
	return Options{
		MaxUsage:           DefaultMaxUsage,
		ExcludedProductIDs: []string{DefaultExcludedProductID},
	}
}

// Preparer loads and cleans one snapshot.
type Preparer struct {
	opts   Options
	logger *zap.Logger
}

// NewPreparer creates a Preparer. A nil logger discards log output.
func NewPreparer(logger *zap.Logger, opts Options) *Preparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUsage <= 0 {
		opts.MaxUsage = DefaultMaxUsage
	}
	return &Preparer{opts: opts, logger: logger.Named("preparation")}
}

// snapshotFiles holds the file chosen for each table.
type snapshotFiles struct {
	contracts, products, prices *entity.SnapshotFile
}

// classify escolhe o arquivo de cada tabela pelo nome. Se houver mais de um,
// o último em ordem vence.
func (p *Preparer) classify(files []entity.SnapshotFile) (snapshotFiles, error) {
	var sf snapshotFiles
	pick := func(slot **entity.SnapshotFile, f *entity.SnapshotFile, kind string) {
		if *slot != nil {
			p.logger.Warn("more than one file for table, using the last one",
				zap.String("table", kind),
				zap.String("ignored", (*slot).Name),
				zap.String("used", f.Name))
		}
		*slot = f
	}

	for i := range files {
		f := &files[i]
		name := strings.ToLower(f.Name)
		switch {
		case strings.Contains(name, "contracts"):
			pick(&sf.contracts, f, "contracts")
		case strings.Contains(name, "products"):
			pick(&sf.products, f, "products")
		case strings.Contains(name, "prices"):
			pick(&sf.prices, f, "prices")
		default:
			p.logger.Debug("ignoring snapshot file", zap.String("file", f.Name))
		}
	}

	var missing []string
	if sf.contracts == nil {
		missing = append(missing, "contracts")
	}
	if sf.products == nil {
		missing = append(missing, "products")
	}
	if sf.prices == nil {
		missing = append(missing, "prices")
	}
	if len(missing) > 0 {
		return sf, fmt.Errorf("%w: %s", types.ErrMissingTable, strings.Join(missing, ", "))
	}
	return sf, nil
}

// Prepare parses the snapshot files and applies the cleaning filters in order:
// usage outliers, duplicate rows, inactive contracts, excluded products.
func (p *Preparer) Prepare(files []entity.SnapshotFile, downloadDate entity.Date) (entity.Tables, *entity.PreparationReport, error) {
	if len(files) == 0 {
		return entity.Tables{}, nil, types.ErrNoSnapshotFiles
	}

	sf, err := p.classify(files)
	if err != nil {
		return entity.Tables{}, nil, err
	}

	contractRows, err := parseContracts(*sf.contracts, downloadDate)
	if err != nil {
		return entity.Tables{}, nil, fmt.Errorf("error parsing contracts: %w", err)
	}
	products, err := parseProducts(*sf.products)
	if err != nil {
		return entity.Tables{}, nil, fmt.Errorf("error parsing products: %w", err)
	}
	priceRows, err := parsePrices(*sf.prices, downloadDate)
	if err != nil {
		return entity.Tables{}, nil, fmt.Errorf("error parsing prices: %w", err)
	}

	report := &entity.PreparationReport{
		Files:           []string{sf.contracts.Name, sf.products.Name, sf.prices.Name},
		ContractsLoaded: len(contractRows),
		ProductsLoaded:  len(products),
		PricesLoaded:    len(priceRows),
	}

	contractRows = p.step(report, StepUsageOutliers, contractRows, func(r contractRow) bool {
		return r.hasUsage && r.contract.Usage < p.opts.MaxUsage
	})
	contractRows = p.dedup(report, contractRows)
	contractRows = p.step(report, StepInactive, contractRows, func(r contractRow) bool {
		return r.contract.IsActive()
	})
	excluded := make(map[string]bool, len(p.opts.ExcludedProductIDs))
	for _, id := range p.opts.ExcludedProductIDs {
		excluded[normalizeID(id)] = true
	}
	contractRows = p.step(report, StepExcludedProducts, contractRows, func(r contractRow) bool {
		return !excluded[r.contract.ProductID]
	})

	prices := make([]entity.Price, 0, len(priceRows))
	for _, r := range priceRows {
		if !r.hasPrice || r.price.ValidFrom.IsZero() {
			report.InvalidPrices++
			continue
		}
		prices = append(prices, r.price)
	}
	if report.InvalidPrices > 0 {
		p.logger.Warn("dropped prices without value or valid_from", zap.Int("rows", report.InvalidPrices))
	}

	contracts := make([]entity.Contract, len(contractRows))
	for i, r := range contractRows {
		contracts[i] = r.contract
	}

	report.UnpricedContracts = countUnpriced(contracts, prices)
	if report.UnpricedContracts > 0 {
		p.logger.Warn("contracts without any price row will be dropped by the join",
			zap.Int("contracts", report.UnpricedContracts))
	}

	p.logger.Info("snapshot prepared",
		zap.Stringer("download_date", downloadDate),
		zap.Int("contracts", len(contracts)),
		zap.Int("products", len(products)),
		zap.Int("prices", len(prices)))

	return entity.Tables{Contracts: contracts, Products: products, Prices: prices}, report, nil
}

// step keeps the rows for which keep returns true and records the counts.
func (p *Preparer) step(report *entity.PreparationReport, name string, rows []contractRow, keep func(contractRow) bool) []contractRow {
	out := rows[:0]
	before := len(rows)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	p.record(report, name, before, len(out))
	return out
}

// dedup remove linhas idênticas em todas as colunas, mantendo a primeira.
func (p *Preparer) dedup(report *entity.PreparationReport, rows []contractRow) []contractRow {
	seen := make(map[string]bool, len(rows))
	return p.step(report, StepDuplicates, rows, func(r contractRow) bool {
		if seen[r.fingerprint] {
			return false
		}
		seen[r.fingerprint] = true
		return true
	})
}

func (p *Preparer) record(report *entity.PreparationReport, name string, before, after int) {
	report.Steps = append(report.Steps, entity.FilterStep{Name: name, Before: before, After: after})
	p.logger.Debug("filter applied",
		zap.String("step", name),
		zap.Int("before", before),
		zap.Int("after", after))
}

func countUnpriced(contracts []entity.Contract, prices []entity.Price) int {
	priced := make(map[string]bool, len(prices))
	for _, pr := range prices {
		priced[pr.ProductID] = true
	}
	n := 0
	for _, c := range contracts {
		if !priced[c.ProductID] {
			n++
		}
	}
	return n
}

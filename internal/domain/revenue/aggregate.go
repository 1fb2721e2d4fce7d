package revenue

import (
	"sort"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

// groupKey identifies one output row.
type groupKey struct {
	customerID   string
	downloadDate entity.Date
	product      string
	creationDate entity.Date
}

func (k groupKey) less(other groupKey) bool {
	if c := compareIDs(k.customerID, other.customerID); c != 0 {
		return c < 0
	}
	if c := k.downloadDate.Compare(other.downloadDate); c != 0 {
		return c < 0
	}
	if c := strings.Compare(k.product, other.product); c != 0 {
		return c < 0
	}
	return k.creationDate.Before(other.creationDate)
}

// aggregate soma receita e consumo por cliente. As linhas saem ordenadas pela chave.
func aggregate(rows []matchedRow) []entity.RevenueRow {
	index := make(map[groupKey]int)
	var out []entity.RevenueRow
	var keys []groupKey

	for _, r := range rows {
		key := groupKey{
			customerID:   r.working.contractID,
			downloadDate: r.working.downloadDate,
			product:      r.working.productName,
			creationDate: r.working.createdAt,
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			keys = append(keys, key)
			out = append(out, entity.RevenueRow{
				CustomerID:   key.customerID,
				DownloadDate: key.downloadDate,
				Product:      key.product,
				CreationDate: key.creationDate,
			})
		}
		out[i].Revenue += r.revenue()
		out[i].Consumption += r.working.usagePeriod
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].less(keys[order[b]])
	})

	sorted := make([]entity.RevenueRow, len(out))
	for i, idx := range order {
		sorted[i] = out[idx]
	}
	return sorted
}

// ComputeStatistics returns the summary over the output rows. With zero rows
// the count and total are still returned, together with ErrNoContracts.
func ComputeStatistics(rows []entity.RevenueRow) (entity.RevenueStatistics, error) {
	stats := entity.RevenueStatistics{NumberContracts: len(rows)}
	for _, r := range rows {
		stats.TotalRevenue += r.Revenue
	}
	if stats.NumberContracts == 0 {
		return stats, ErrNoContracts
	}
	stats.AvRevenuePerContract = stats.TotalRevenue / float64(stats.NumberContracts)
	return stats, nil
}

// ProductBreakdown sums the output rows per product, highest revenue first.
func ProductBreakdown(rows []entity.RevenueRow) []entity.ProductRevenue {
	index := make(map[string]int)
	var out []entity.ProductRevenue
	for _, r := range rows {
		i, ok := index[r.Product]
		if !ok {
			i = len(out)
			index[r.Product] = i
			out = append(out, entity.ProductRevenue{Product: r.Product})
		}
		out[i].Customers++
		out[i].Revenue += r.Revenue
		out[i].Consumption += r.Consumption
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Product < out[j].Product
	})
	return out
}

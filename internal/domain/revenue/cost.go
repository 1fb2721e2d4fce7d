package revenue

import "github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"

// daysPerYear aproxima o ano; anos bissextos não são tratados.
const daysPerYear = 365

// workingSegment carries the usage-proportional cost of one overlap.
type workingSegment struct {
	contractID        string
	downloadDate      entity.Date
	productName       string
	createdAt         entity.Date
	dateFrom          entity.Date
	dateTo            entity.Date
	usagePeriod       float64
	workingCostPeriod float64
	seq               int
}

// baseSegment carries the fixed cost of one overlap.
type baseSegment struct {
	contractID     string
	dateFrom       entity.Date
	dateTo         entity.Date
	baseCostPeriod float64
	seq            int
}

// workingCost converts usage (kWh/yr) and price (ct/kWh) into € over days,
// together with the usage (kWh) consumed over the same days.
func workingCost(usage, price float64, days int) (usagePeriod, costPeriod float64) {
	costYear := usage * price / 100
	costDay := costYear / daysPerYear
	costPeriod = costDay * float64(days)

	usageDay := usage / daysPerYear
	usagePeriod = usageDay * float64(days)
	return usagePeriod, costPeriod
}

// baseCost converts a yearly base price (€/yr) into € over days.
func baseCost(price float64, days int) float64 {
	costDay := price / daysPerYear
	return costDay * float64(days)
}

func newWorkingSegment(rec joinedRecord, o overlap, seq int) workingSegment {
	usagePeriod, costPeriod := workingCost(rec.contract.Usage, rec.price.Price, o.days)
	return workingSegment{
		contractID:        rec.contract.ID,
		downloadDate:      rec.contract.DownloadDate,
		productName:       rec.productName,
		createdAt:         rec.contract.CreatedAt,
		dateFrom:          o.dateFrom,
		dateTo:            o.dateTo,
		usagePeriod:       usagePeriod,
		workingCostPeriod: costPeriod,
		seq:               seq,
	}
}

func newBaseSegment(rec joinedRecord, o overlap, seq int) baseSegment {
	return baseSegment{
		contractID:     rec.contract.ID,
		dateFrom:       o.dateFrom,
		dateTo:         o.dateTo,
		baseCostPeriod: baseCost(rec.price.Price, o.days),
		seq:            seq,
	}
}

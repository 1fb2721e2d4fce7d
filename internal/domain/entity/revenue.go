package entity

// RevenueRow is one output row per customer group.
type RevenueRow struct {
	CustomerID   string  `json:"customer_id"`
	DownloadDate Date    `json:"download_date"`
	Product      string  `json:"product"`
	CreationDate Date    `json:"creation_date"`
	Revenue      float64 `json:"revenue"`
	Consumption  float64 `json:"consumption"`
}

// RevenueStatistics are the summary figures over all output rows.
type RevenueStatistics struct {
	NumberContracts      int     `json:"number_contracts"`
	TotalRevenue         float64 `json:"total_revenue"`
	AvRevenuePerContract float64 `json:"av_revenue_per_contract"`
}

// ProductRevenue soma a receita de todas as linhas de um produto.
type ProductRevenue struct {
	Product     string  `json:"product"`
	Customers   int     `json:"customers"`
	Revenue     float64 `json:"revenue"`
	Consumption float64 `json:"consumption"`
}

// EngineDiagnostics counts the records the engine skipped or tolerated.
type EngineDiagnostics struct {
	JoinedRecords           int  `json:"joined_records"`
	DiscardedPairs          int  `json:"discarded_pairs"`
	NegativeOverlaps        int  `json:"negative_overlaps"`
	NegativeOverlapsKept    bool `json:"negative_overlaps_kept"`
	UnknownComponents       int  `json:"unknown_components"`
	WorkingSegments         int  `json:"working_segments"`
	BaseSegments            int  `json:"base_segments"`
	WorkingWithoutBasePrice int  `json:"working_without_base_price"`
}

// FilterStep records one preparation filter.
type FilterStep struct {
	Name   string `json:"name"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Removed returns how many rows the step dropped.
func (s FilterStep) Removed() int { return s.Before - s.After }

// PreparationReport descreve o que a etapa de preparação fez com o snapshot.
type PreparationReport struct {
	Files             []string     `json:"files"`
	ContractsLoaded   int          `json:"contracts_loaded"`
	ProductsLoaded    int          `json:"products_loaded"`
	PricesLoaded      int          `json:"prices_loaded"`
	Steps             []FilterStep `json:"steps"`
	UnpricedContracts int          `json:"unpriced_contracts"`
	InvalidPrices     int          `json:"invalid_prices"`
}

// RevenueReport is everything one run produces.
type RevenueReport struct {
	PeriodStart  Date               `json:"period_start_date"`
	DownloadDate Date               `json:"download_date"`
	Rows         []RevenueRow       `json:"rows"`
	Statistics   RevenueStatistics  `json:"statistics"`
	ByProduct    []ProductRevenue   `json:"by_product"`
	Diagnostics  EngineDiagnostics  `json:"diagnostics"`
	Preparation  *PreparationReport `json:"preparation,omitempty"`
}

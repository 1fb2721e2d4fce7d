package entity

// PriceComponent determina qual fórmula de custo se aplica a um preço.
type PriceComponent string

const (
	// WorkingPrice é cobrado por kWh consumido (ct/kWh).
	WorkingPrice PriceComponent = "workingprice"
	// BasePrice é uma taxa fixa anual (€/ano), independente do consumo.
	BasePrice PriceComponent = "baseprice"
)

// Price is the rate of one product component over a validity window.
type Price struct {
	ProductID    string         `json:"productid"`
	Component    PriceComponent `json:"productcomponent"`
	Price        float64        `json:"price"`
	Unit         string         `json:"unit"`
	ValidFrom    Date           `json:"valid_from"`
	ValidUntil   Date           `json:"valid_until"`
	DownloadDate Date           `json:"download_date"`
}

// Tables agrupa as três tabelas já limpas de um snapshot.
type Tables struct {
	Contracts []Contract
	Products  []Product
	Prices    []Price
}

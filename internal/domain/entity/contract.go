package entity

// Contract is one customer supply agreement from the contracts table.
type Contract struct {
	ID               string  `json:"id"`
	Usage            float64 `json:"usage"`
	StartDate        Date    `json:"startdate"`
	EndDate          Date    `json:"enddate"`
	Status           string  `json:"status"`
	ProductID        string  `json:"productid"`
	CreatedAt        Date    `json:"createdat"`
	ModificationDate Date    `json:"modificationdate"`
	DownloadDate     Date    `json:"download_date"`
}

// IsActive reports whether the contract has no end date.
func (c Contract) IsActive() bool {
	return c.EndDate.IsZero()
}

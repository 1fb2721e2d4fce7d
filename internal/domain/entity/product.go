package entity

// Product is one sellable product.
type Product struct {
	ProductID        string `json:"productid"`
	ProductName      string `json:"productname"`
	ModificationDate Date   `json:"modificationdate"`
}

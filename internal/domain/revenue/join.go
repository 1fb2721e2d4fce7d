package revenue

import "github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"

// pricedProduct is a price row carrying its product name.
type pricedProduct struct {
	price       entity.Price
	productName string
}

// joinedRecord is one (contract, price) combination sharing a productid.
type joinedRecord struct {
	contract    entity.Contract
	price       entity.Price
	productName string
}

// joinPriceProduct faz o inner join de preços com produtos por productid.
func joinPriceProduct(prices []entity.Price, products []entity.Product) map[string][]pricedProduct {
	names := make(map[string][]string, len(products))
	for _, p := range products {
		names[p.ProductID] = append(names[p.ProductID], p.ProductName)
	}

	byProduct := make(map[string][]pricedProduct)
	for _, price := range prices {
		for _, name := range names[price.ProductID] {
			byProduct[price.ProductID] = append(byProduct[price.ProductID], pricedProduct{
				price:       price,
				productName: name,
			})
		}
	}
	return byProduct
}

// joinContractPrice expands each contract into one record per priced product row.
// Contracts with no priced product are dropped.
func joinContractPrice(contracts []entity.Contract, priced map[string][]pricedProduct) []joinedRecord {
	var records []joinedRecord
	for _, c := range contracts {
		for _, pp := range priced[c.ProductID] {
			records = append(records, joinedRecord{
				contract:    c,
				price:       pp.price,
				productName: pp.productName,
			})
		}
	}
	return records
}

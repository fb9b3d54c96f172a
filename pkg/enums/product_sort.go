package enums

// ProductSort enumerates the recognized listing sort keys. Anything else
// leaves the listing in natural order.
type ProductSort string

const (
	ProductSortNone      ProductSort = ""
	ProductSortStockDesc ProductSort = "stock_desc"
	ProductSortStockAsc  ProductSort = "stock_asc"
	ProductSortNameAsc   ProductSort = "name_asc"
	ProductSortNameDesc  ProductSort = "name_desc"
)

var validProductSorts = []ProductSort{
	ProductSortStockDesc,
	ProductSortStockAsc,
	ProductSortNameAsc,
	ProductSortNameDesc,
}

// String implements fmt.Stringer.
func (s ProductSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a recognized sort key.
func (s ProductSort) IsValid() bool {
	for _, candidate := range validProductSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductSort maps raw input onto a sort key. Unrecognized values fold
// into ProductSortNone rather than erroring; the listing treats them as
// "no explicit order".
func ParseProductSort(value string) ProductSort {
	for _, candidate := range validProductSorts {
		if string(candidate) == value {
			return candidate
		}
	}
	return ProductSortNone
}

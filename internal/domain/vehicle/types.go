package vehicle

type Category string

const (
	CategoryStandard Category = "STANDARD"
	CategoryLuxury   Category = "LUXURY"
	CategorySport    Category = "SPORT"
	CategorySUV      Category = "SUV"
	CategoryVan      Category = "VAN"
	CategoryPremium  Category = "PREMIUM"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryLuxury, CategorySport, CategorySUV, CategoryVan, CategoryPremium:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", ErrInvalidCategory
	}
	return category, nil
}

package bootstrap

// SeedMarket рынок из начального каталога
type SeedMarket struct {
	ID   string
	City string
	Name string
}

// Seed начальные данные пустого хранилища
type Seed struct {
	AdminID    string // защищенный администратор
	AdminName  string
	VendorID   string // пример продавца, пустой - не создается
	VendorName string
	Markets    []SeedMarket
}

// Response результат заполнения
type Response struct {
	Seeded  bool
	Vendors int
	Markets int
}

package sqlite

type CategoryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (CategoryModel) TableName() string { return "categories" }

type BrandModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (BrandModel) TableName() string { return "brands" }

type LocationModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (LocationModel) TableName() string { return "locations" }

type AllergenModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (AllergenModel) TableName() string { return "allergens" }

type PantryItemModel struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	CategoryID     uint   `gorm:"not null;index"`
	BrandID        uint   `gorm:"not null"`
	LocationID     uint   `gorm:"not null;index"`
	ExpirationDate string `gorm:"not null"`
	Quantity       int    `gorm:"not null"`
	AddedDate      string `gorm:"not null"`
	Notes          string `gorm:"not null"`
}

func (PantryItemModel) TableName() string { return "pantry_items" }

type PantryItemAllergenModel struct {
	ID         uint `gorm:"primaryKey"`
	ItemID     uint `gorm:"not null;index:idx_item_allergen,unique"`
	AllergenID uint `gorm:"not null;index:idx_item_allergen,unique"`
}

func (PantryItemAllergenModel) TableName() string { return "pantry_item_allergens" }

type ShoppingListModel struct {
	ID        uint   `gorm:"primaryKey"`
	ItemName  string `gorm:"not null"`
	Quantity  int    `gorm:"not null"`
	AddedDate string `gorm:"not null"`
	Notes     string `gorm:"not null"`
}

func (ShoppingListModel) TableName() string { return "shopping_list" }

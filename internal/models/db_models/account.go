package db_models

type Account struct {
	BaseModel
	FullName     string
	Email        string `gorm:"unique"`
	Phone        string
	PasswordHash string
	Role         string `gorm:"default:user"`

	Lots         []CreditLot   `gorm:"foreignKey:AccountID"`
	Transactions []Transaction `gorm:"foreignKey:AccountID"`
}

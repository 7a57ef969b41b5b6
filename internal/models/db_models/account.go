package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Coins        int

	CheckIns []CheckIn `gorm:"foreignKey:AccountID"`
}

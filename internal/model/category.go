package model

// Category is a fixed taxonomy node. Categories are seeded once and treated
// as immutable reference data; this service only reads them.
type Category struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Name        string `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(100);unique;not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (Category) TableName() string {
	return "categories"
}

package model

type Category struct {
	BaseModel
	Name      string    `db:"name" json:"name"`
	ImageLink string    `db:"image_link" json:"image_link"`
	Products  []Product `db:"-" json:"products,omitempty"` // Reverse side, never persisted from here
}

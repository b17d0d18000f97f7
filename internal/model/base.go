package model

import "time"

type BaseModel struct {
	ID          int64     `db:"id" json:"id"`
	CreatedDate time.Time `db:"created_date" json:"created_date"`
	UpdatedDate time.Time `db:"updated_date" json:"updated_date"`
}

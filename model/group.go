package model

import "time"

type Group struct {
	GroupID   string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Name      string    `bson:"name" json:"name" binding:"required"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

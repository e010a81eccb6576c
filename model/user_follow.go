package model

import (
	"time"

	"gorm.io/gorm"
)

/*

UserFollow is a "many-to-many" relation of a user following another user

UserID: the follower
TargetID: the user being followed
CreatedAt: time when relation is created

The pair is the primary key, re-following is a conflict no-op rather than a
duplicate edge.

*/

type UserFollow struct {
	UserID    string `gorm:"primaryKey"`
	TargetID  string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (UserFollow) BeforeCreate(db *gorm.DB) error {
	return nil
}

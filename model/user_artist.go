package model

import (
	"time"
)

/*

UserArtist is a "has-many" row recording one favorite artist pick

UserID: user id
ArtistID: catalog artist id, an opaque string from the external music catalog
CreatedAt: time when relation is created

*/

type UserArtist struct {
	UserID    string `gorm:"primaryKey" json:"userId"`
	ArtistID  string `gorm:"primaryKey" json:"artistId"`
	CreatedAt time.Time
}

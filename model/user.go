package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is a registered MelodyMatch account

Id: primary key, opaque uuid issued at registration
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

Name: display name shown on posts and recommendations
Email: login identity, unique across all accounts
PasswordHash: bcrypt hash of the login password, never serialized
AvatarUrl: profile photo reference

FavoriteArtists: catalog artist ids the user picked, "has-many" relation
Following: users this user follows, "many-to-many" relation through
		user_follows. Only the owning user mutates this set.

*/

type User struct {
	Id              string `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time
	DeletedAt       gorm.DeletedAt
	Name            string       `json:"name"`
	Email           string       `gorm:"uniqueIndex" json:"email"`
	PasswordHash    string       `json:"-"`
	AvatarUrl       string       `json:"avatarUrl"`
	FavoriteArtists []UserArtist `json:"favorite_artists" gorm:"foreignKey:UserID"`
	Following       []*User      `json:"following" gorm:"many2many:user_follows;joinForeignKey:UserID;joinReferences:TargetID"`
}

// FavoriteArtistIds flattens the join rows into the plain id set consumed by
// the recommendation matcher.
func (u *User) FavoriteArtistIds() []string {
	ids := make([]string, 0, len(u.FavoriteArtists))
	for _, fa := range u.FavoriteArtists {
		ids = append(ids, fa.ArtistID)
	}
	return ids
}

// FollowingIds flattens the following relation into the plain id set.
func (u *User) FollowingIds() []string {
	ids := make([]string, 0, len(u.Following))
	for _, f := range u.Following {
		ids = append(ids, f.Id)
	}
	return ids
}

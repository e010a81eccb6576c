package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*

Post is a piece of content a user published to the shared feed

Id: primary key, use to identify a post
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted, soft delete so a fetch by id after
		deletion reports not found without losing the row
LastEditedAt: time of the most recent author edit, zero until first edit

AuthorID:
Author: user who published this post, "belongs-to" relation. Only the author
		may edit or delete.

Content: post body in plain text
ImageUrl: reference into the external object store, empty when the post has
		no image. Images are never embedded inline.

Likes, Comments: reserved collections, initialized empty and currently unused

Cursor: The auto-inc global-unique index to keep the relative order of posts

*/

type Post struct {
	Id           string `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time
	DeletedAt    gorm.DeletedAt
	LastEditedAt time.Time      `json:"lastEditedAt"`
	AuthorID     string         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"authorId"`
	Author       User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author"`
	Content      string         `json:"content"`
	ImageUrl     string         `json:"imageUrl"`
	Likes        datatypes.JSON `json:"likes"`
	Comments     datatypes.JSON `json:"comments"`
	Cursor       int32          `gorm:"autoIncrement" json:"cursor"`
}

package model

import "time"

/*

ChatMessage is one direct message inside a 1:1 conversation

Id: primary key, use to identify a message
ConversationKey: canonical key of the conversation this message belongs to,
		derived from the unordered participant pair, see ConversationKey()
SenderID: user who sent the message
Text: message body in plain text
CreatedAt: send time, messages are ordered by this field

Messages are append-only. There is deliberately no update or delete path.

*/

type ChatMessage struct {
	Id              string    `gorm:"primaryKey" json:"id"`
	ConversationKey string    `gorm:"index" json:"conversationKey"`
	SenderID        string    `json:"senderId"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"createdAt"`
}

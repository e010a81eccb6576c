package utils

import (
	"testing"
	"time"

	"github.com/EmmanuellaOsikoya/melodymatch/auth"
	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const TestUserPassword = "test-password"

// create user with name and email, do sanity checks and returns it
func TestCreateUserAndValidate(t *testing.T, name string, email string, db *gorm.DB) *model.User {
	hash, err := auth.NewPasswordServiceForTest().Hash(TestUserPassword)
	require.NoError(t, err)

	user := &model.User{
		Id:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(user).Error)

	var readBack model.User
	require.NoError(t, db.Where("id = ?", user.Id).First(&readBack).Error)
	require.Equal(t, name, readBack.Name)
	require.Equal(t, email, readBack.Email)
	require.Truef(t, time.Now().UnixNano() > readBack.CreatedAt.UnixNano(), "time created wrong")

	return user
}

// replace the user's favorite artists, do sanity checks
func TestSetFavoriteArtistsAndValidate(t *testing.T, userId string, artistIds []string, db *gorm.DB) {
	require.NoError(t, db.Where("user_id = ?", userId).Delete(&model.UserArtist{}).Error)
	for _, artistId := range artistIds {
		require.NoError(t, db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.UserArtist{UserID: userId, ArtistID: artistId}).Error)
	}

	var readBack []model.UserArtist
	require.NoError(t, db.Where("user_id = ?", userId).Find(&readBack).Error)
	require.Equal(t, len(artistIds), len(readBack))
}

// create post with content, do sanity checks and returns it
func TestCreatePostAndValidate(t *testing.T, authorId string, content string, db *gorm.DB) *model.Post {
	post := &model.Post{
		Id:       uuid.New().String(),
		AuthorID: authorId,
		Content:  content,
		Likes:    datatypes.JSON("[]"),
		Comments: datatypes.JSON("[]"),
	}
	require.NoError(t, db.Create(post).Error)

	var readBack model.Post
	require.NoError(t, db.Where("id = ?", post.Id).First(&readBack).Error)
	require.Equal(t, content, readBack.Content)
	require.NotZero(t, readBack.Cursor)

	return post
}

// create a follow edge from userId to targetId, do sanity checks
func TestCreateFollowAndValidate(t *testing.T, userId string, targetId string, db *gorm.DB) {
	require.NoError(t, db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserFollow{UserID: userId, TargetID: targetId}).Error)

	var readBack model.UserFollow
	require.NoError(t, db.Where("user_id = ? AND target_id = ?", userId, targetId).
		First(&readBack).Error)
}

// create chat message in the conversation between senderId and peerId,
// do sanity checks and returns it
func TestCreateChatMessageAndValidate(t *testing.T, senderId string, peerId string, text string, db *gorm.DB) *model.ChatMessage {
	msg := &model.ChatMessage{
		Id:              uuid.New().String(),
		ConversationKey: model.ConversationKey(senderId, peerId),
		SenderID:        senderId,
		Text:            text,
	}
	require.NoError(t, db.Create(msg).Error)

	var readBack model.ChatMessage
	require.NoError(t, db.Where("id = ?", msg.Id).First(&readBack).Error)
	require.Equal(t, text, readBack.Text)

	return msg
}

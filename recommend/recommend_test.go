package recommend

import (
	"testing"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(id string, artistIds []string, followingIds []string) *model.User {
	user := &model.User{Id: id, Name: "user_" + id}
	for _, a := range artistIds {
		user.FavoriteArtists = append(user.FavoriteArtists, model.UserArtist{UserID: id, ArtistID: a})
	}
	for _, f := range followingIds {
		user.Following = append(user.Following, &model.User{Id: f})
	}
	return user
}

func TestMatchSharedArtists(t *testing.T) {
	viewer := newTestUser("viewer", []string{"x", "y"}, nil)
	candidate := newTestUser("candidate", []string{"y", "z"}, nil)

	recommendations := Match(viewer, []*model.User{candidate})

	require.Len(t, recommendations, 1)
	assert.Equal(t, "candidate", recommendations[0].User.Id)
	assert.Equal(t, []string{"y"}, recommendations[0].SharedArtistIds)
	assert.False(t, recommendations[0].IsFollowing)
	assert.False(t, recommendations[0].FollowsYou)
}

func TestMatchExcludesSelf(t *testing.T) {
	viewer := newTestUser("viewer", []string{"x", "y"}, nil)

	// Even a full overlap with the viewer's own profile must not surface.
	recommendations := Match(viewer, []*model.User{viewer, newTestUser("other", []string{"x"}, nil)})

	require.Len(t, recommendations, 1)
	assert.Equal(t, "other", recommendations[0].User.Id)
}

func TestMatchDisjointAndEmptySets(t *testing.T) {
	viewer := newTestUser("viewer", []string{"x", "y"}, nil)

	t.Run("disjoint favorites excluded", func(t *testing.T) {
		recommendations := Match(viewer, []*model.User{newTestUser("c", []string{"z"}, nil)})
		assert.Empty(t, recommendations)
	})

	t.Run("empty candidate favorites excluded", func(t *testing.T) {
		recommendations := Match(viewer, []*model.User{newTestUser("c", nil, nil)})
		assert.Empty(t, recommendations)
	})

	t.Run("empty viewer favorites match nobody", func(t *testing.T) {
		empty := newTestUser("empty", nil, nil)
		recommendations := Match(empty, []*model.User{viewer})
		assert.Empty(t, recommendations)
	})
}

func TestMatchFollowFlags(t *testing.T) {
	viewer := newTestUser("viewer", []string{"x"}, []string{"followed"})
	followed := newTestUser("followed", []string{"x"}, nil)
	followsBack := newTestUser("mutual", []string{"x"}, []string{"viewer"})

	recommendations := Match(viewer, []*model.User{followed, followsBack})

	require.Len(t, recommendations, 2)
	byId := map[string]*model.Recommendation{}
	for _, r := range recommendations {
		byId[r.User.Id] = r
	}
	assert.True(t, byId["followed"].IsFollowing)
	assert.False(t, byId["followed"].FollowsYou)
	assert.False(t, byId["mutual"].IsFollowing)
	assert.True(t, byId["mutual"].FollowsYou)
}

func TestMatchDeterministicOrder(t *testing.T) {
	viewer := newTestUser("viewer", []string{"a", "b", "c"}, nil)
	oneShared := newTestUser("z_one", []string{"a"}, nil)
	twoShared := newTestUser("m_two", []string{"a", "b"}, nil)
	alsoOneShared := newTestUser("a_one", []string{"c"}, nil)

	for i := 0; i < 5; i++ {
		recommendations := Match(viewer, []*model.User{oneShared, twoShared, alsoOneShared})
		require.Len(t, recommendations, 3)
		assert.Equal(t, "m_two", recommendations[0].User.Id)
		assert.Equal(t, "a_one", recommendations[1].User.Id)
		assert.Equal(t, "z_one", recommendations[2].User.Id)
	}
}

func TestToggleFollowIdempotent(t *testing.T) {
	following := []string{"b", "c"}

	// Toggle on: adds.
	updated, nowFollowing, err := ToggleFollow("a", following, "d")
	require.NoError(t, err)
	assert.True(t, nowFollowing)
	assert.Len(t, updated, 3)

	// Toggle off: removes, back to the original size.
	reverted, nowFollowing, err := ToggleFollow("a", updated, "d")
	require.NoError(t, err)
	assert.False(t, nowFollowing)
	assert.ElementsMatch(t, following, reverted)
}

func TestToggleFollowInvalidTarget(t *testing.T) {
	following := []string{"b"}

	_, _, err := ToggleFollow("a", following, "")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, _, err = ToggleFollow("a", following, "a")
	assert.ErrorIs(t, err, ErrInvalidTarget)

	// No mutation on failure.
	assert.Equal(t, []string{"b"}, following)
}

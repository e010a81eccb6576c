// Package recommend holds the taste-matching core: intersecting favorite
// artist sets to produce recommendations, and the follow set toggle.
package recommend

import (
	"sort"

	"github.com/EmmanuellaOsikoya/melodymatch/model"
	"github.com/EmmanuellaOsikoya/melodymatch/utils"
	"github.com/pkg/errors"
)

// ErrInvalidTarget is returned by ToggleFollow when the target id is empty or
// the viewer's own id. No state is mutated in that case.
var ErrInvalidTarget = errors.New("invalid follow target")

// Match computes recommendations for the viewer against a candidate pool.
// A candidate is recommended iff the intersection of the two favorite artist
// sets is non-empty. The viewer is never included. Output order is
// deterministic: descending shared artist count, ties broken by ascending
// candidate id, so repeated computations over the same profiles agree.
func Match(viewer *model.User, candidates []*model.User) []*model.Recommendation {
	viewerFavorites := viewer.FavoriteArtistIds()
	viewerFollowing := viewer.FollowingIds()

	recommendations := []*model.Recommendation{}
	for _, candidate := range candidates {
		if candidate.Id == viewer.Id {
			continue
		}
		shared := sharedArtists(viewerFavorites, candidate.FavoriteArtistIds())
		if len(shared) == 0 {
			continue
		}
		recommendations = append(recommendations, &model.Recommendation{
			User:            candidate,
			SharedArtistIds: shared,
			IsFollowing:     utils.ContainsString(viewerFollowing, candidate.Id),
			FollowsYou:      utils.ContainsString(candidate.FollowingIds(), viewer.Id),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		if len(recommendations[i].SharedArtistIds) != len(recommendations[j].SharedArtistIds) {
			return len(recommendations[i].SharedArtistIds) > len(recommendations[j].SharedArtistIds)
		}
		return recommendations[i].User.Id < recommendations[j].User.Id
	})

	return recommendations
}

// sharedArtists returns the sorted intersection of two artist id lists.
// Duplicate ids in either input count once.
func sharedArtists(a []string, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}

	shared := []string{}
	for _, id := range b {
		if inA[id] {
			shared = append(shared, id)
			inA[id] = false
		}
	}
	sort.Strings(shared)
	return shared
}

// ToggleFollow flips membership of targetId in the viewer's following set and
// returns the updated set plus whether the viewer now follows the target.
// Adding an already-present member or removing an absent one is a no-op, so
// the operation is safe to retry. An empty target or self-follow returns
// ErrInvalidTarget without touching the set.
func ToggleFollow(viewerId string, following []string, targetId string) ([]string, bool, error) {
	if targetId == "" || targetId == viewerId {
		return following, false, errors.Wrapf(ErrInvalidTarget, "viewer %s target %q", viewerId, targetId)
	}

	if utils.ContainsString(following, targetId) {
		updated := make([]string, 0, len(following)-1)
		for _, id := range following {
			if id != targetId {
				updated = append(updated, id)
			}
		}
		return updated, false, nil
	}

	return append(append([]string{}, following...), targetId), true, nil
}

package model

/*

Recommendation is a derived match between the viewing user and a candidate
with overlapping music taste. It is recomputed from current profile data on
every request and never persisted.

User: the recommended candidate
SharedArtistIds: intersection of the two users' favorite artist ids, always
		non-empty for a produced recommendation
IsFollowing: the viewer already follows the candidate
FollowsYou: the candidate follows the viewer back

*/

type Recommendation struct {
	User            *User    `json:"user"`
	SharedArtistIds []string `json:"sharedArtistIds"`
	IsFollowing     bool     `json:"isFollowing"`
	FollowsYou      bool     `json:"followsYou"`
}

package model

// conversationKeySeparator joins the two participant ids. User ids are uuids
// and never contain an underscore, so the key stays collision-free.
const conversationKeySeparator = "_"

// ConversationKey maps an unordered pair of user ids to the single canonical
// conversation key both participants address. The two ids are ordered
// lexicographically before joining, so ConversationKey(a, b) and
// ConversationKey(b, a) always agree.
func ConversationKey(a string, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + conversationKeySeparator + b
}

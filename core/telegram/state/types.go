package state

// Store holds at most one value per user. Implementations must make every
// method atomic with respect to the others for the same user.
type Store[V any] interface {
	// Get returns the value stored for the user, if any.
	Get(userID int64) (V, bool)
	// Set stores v for the user, replacing any previous value.
	Set(userID int64, v V)
	// Take removes and returns the user's value in one step. Only one of
	// several concurrent callers observes ok == true for the same value.
	Take(userID int64) (V, bool)
	// Clear removes the user's value. It is a no-op when nothing is stored.
	Clear(userID int64)
	// ClearIf removes the user's value only when match accepts it.
	ClearIf(userID int64, match func(V) bool) bool
	// InProgress reports whether a value is stored for the user.
	InProgress(userID int64) bool
}

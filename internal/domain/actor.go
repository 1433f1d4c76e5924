package domain

// Actor is the caller of a usecase. The zero value is the anonymous actor.
type Actor struct {
	UserID   int64
	IsMentor bool
}

func Anonymous() Actor {
	return Actor{}
}

func (a Actor) IsAuthenticated() bool {
	return a.UserID > 0
}

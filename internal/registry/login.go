package registry

// LoginResult is the outcome of an authentication attempt.
type LoginResult struct {
	Status Status
	Entry  Entry // set on StatusAuthenticated: the matched identity
}

// Login authenticates a freshly captured face against the known set.
// Every call is independent and stateless: no lockout, no rate limiting, no
// attempt counting. The "logged in" state is held only by the caller.
func Login(known *KnownSet, query []float32, threshold float64) (*LoginResult, error) {
	if len(query) == 0 {
		return nil, &ValidationError{Field: "photo", Reason: "no face embedding provided"}
	}
	if known.Len() == 0 {
		return nil, ErrEmptyRegistry
	}

	idx, ok := known.Match(query, threshold)
	if !ok {
		return &LoginResult{Status: StatusRejected}, nil
	}

	return &LoginResult{
		Status: StatusAuthenticated,
		Entry:  known.Entry(idx),
	}, nil
}

package domain

// User is the minimal read model the core needs: a recipient for
// fire-and-forget notifications. Account management lives elsewhere.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

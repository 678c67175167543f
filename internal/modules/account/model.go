// README: Account record and the authenticated session identity.
package account

type Account struct {
	Username string `db:"username"`
	Password string `db:"password"`
}

// Session identifies whoever authenticated. It is passed explicitly to every
// operation that acts on behalf of a user.
type Session struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}

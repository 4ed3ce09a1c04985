package api

// Credentials is the body of the CREATE step's POST.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserPatch is the body of the UPDATE step's PATCH.
type UserPatch struct {
	Username string `json:"username"`
}

// User is a row of the users listing.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Code     string `json:"code"`
	Number5  string `json:"number5"`
}

// Result is the normalized payload of a successful record call.
//
// The demo API is not consistent about where it puts identifiers: some
// responses carry them at the top level, some inside a "user" object, and ids
// appear as either "id" or "_id". Result flattens all of those.
type Result struct {
	Code    string
	ID      string
	Message string
}

// Listing is the payload of the users listing.
type Listing struct {
	Message string
	Users   []User
}

// Session is the payload of a successful login or signup.
type Session struct {
	Token   string
	Message string
}

// recordBody is the wire shape decoded from record responses.
type recordBody struct {
	Code    string      `json:"code"`
	ID      string      `json:"id"`
	MongoID string      `json:"_id"`
	Message string      `json:"message"`
	User    *recordUser `json:"user"`
}

type recordUser struct {
	Code    string `json:"code"`
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

func (b recordBody) result() Result {
	r := Result{
		Code:    b.Code,
		ID:      firstNonEmpty(b.ID, b.MongoID),
		Message: b.Message,
	}
	if b.User != nil {
		r.Code = firstNonEmpty(r.Code, b.User.Code)
		r.ID = firstNonEmpty(r.ID, b.User.ID, b.User.MongoID)
	}
	return r
}

type listingBody struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

type authRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authBody struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package contextkeys

// Keys under which the authorization gate stores the resolved caller in gin.Context.
const (
	UserKey   = "currentUser"
	UserIDKey = "userID"
	RoleKey   = "role"
)

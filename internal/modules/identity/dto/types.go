package dto

type PrincipalOutput struct {
	UserID      string
	Email       string
	DisplayName string
	Label       string
	// Source is "override" for a configured user id, "credentials" otherwise.
	Source string
}

package account

import "accounthub/app/database"

const completionFieldCount = 8

// Completion derives the profile-completion percentage from the presence
// of optional profile fields. Pure function; recomputed after every
// profile-affecting mutation.
func Completion(u *database.User, hasAddress bool) int {
	filled := 0

	for _, present := range []bool{
		u.FirstName != "",
		u.LastName != "",
		u.Email != "",
		u.Username != "",
		u.Phone != "",
		hasAddress,
		u.ProfilePicture != "",
		u.Gender != "",
	} {
		if present {
			filled++
		}
	}

	return filled * 100 / completionFieldCount
}

// AddressHasData reports whether a satellite address record carries any
// user-entered data. Addresses are created empty at registration, so a
// bare row does not count toward completion.
func AddressHasData(a *database.Address) bool {
	if a == nil {
		return false
	}
	return a.Street != "" || a.City != "" || a.State != "" || a.PostalCode != "" || a.Country != ""
}

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"accounthub/app/database"
)

func TestCompletion(t *testing.T) {
	testCases := []struct {
		name       string
		user       database.User
		hasAddress bool
		expected   int
	}{
		{
			name:     "empty user",
			user:     database.User{},
			expected: 0,
		},
		{
			// A fresh registration carries username, email and the
			// default gender.
			name:     "new registration",
			user:     database.User{Username: "testuser", Email: "t@example.com", Gender: "other"},
			expected: 37,
		},
		{
			name: "all fields",
			user: database.User{
				Username:       "testuser",
				Email:          "t@example.com",
				FirstName:      "Test",
				LastName:       "User",
				Gender:         "female",
				Phone:          "+15550100",
				ProfilePicture: "profile-pictures/abc.png",
			},
			hasAddress: true,
			expected:   100,
		},
		{
			name: "half filled",
			user: database.User{
				Username:  "testuser",
				Email:     "t@example.com",
				FirstName: "Test",
				Gender:    "other",
			},
			expected: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Completion(&tc.user, tc.hasAddress))
		})
	}
}

func TestAddressHasData(t *testing.T) {
	assert.False(t, AddressHasData(nil))
	assert.False(t, AddressHasData(&database.Address{}))
	assert.True(t, AddressHasData(&database.Address{City: "Oslo"}))
	assert.True(t, AddressHasData(&database.Address{Country: "NO"}))
}

package api

import "time"

// Profile is the signed-in user's profile.
type Profile struct {
	ID        int       `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     *string   `json:"email"`
	ImageURL  *string   `json:"image_url"`
	HobbyTags []string  `json:"hobby_tags"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the nickname, falling back to the email address.
func (p Profile) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.Email != nil {
		return *p.Email
	}
	return "unknown"
}

// Avatar returns the profile image URL, or empty string if none.
func (p Profile) Avatar() string {
	if p.ImageURL != nil {
		return *p.ImageURL
	}
	return ""
}

// NicknameCheck is the answer of the nickname existence check.
// Message is supplied by the server and is meant to be shown as is.
type NicknameCheck struct {
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

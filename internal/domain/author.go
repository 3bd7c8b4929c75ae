package domain

// SocialLinks holds optional profile links for an author.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Author is the public byline attached to posts.
type Author struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Bio    string       `json:"bio"`
	Avatar string       `json:"avatar,omitempty"`
	Social *SocialLinks `json:"social,omitempty"`
}

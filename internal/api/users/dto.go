package users

type UpdateUserRequest struct {
	Name     string `json:"display_name"`
	Username string `json:"username" binding:"required,min=3"`
}

type UserDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}

// SeriesSummary is the card shape the profile tabs render.
type SeriesSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ViewCount   int    `json:"view_count"`
}

type ProfileResponse struct {
	User          UserDTO         `json:"user"`
	Series        []SeriesSummary `json:"series"`
	Likes         []SeriesSummary `json:"likes"`
	Subscriptions []UserDTO       `json:"subscriptions"`
	IsSubscribed  bool            `json:"is_subscribed"`
}

package models

// StaticPage - статичная информационная страница (about, leadership, ...).
type StaticPage struct {
	Slug        string
	Title       string
	Description string
}

// SocialPost - пост из ленты соцсети на странице social hub.
type SocialPost struct {
	ID       int
	Platform string
	Handle   string
	Date     string
	Content  string
	ImageURL string
	Likes    string
	Comments string
	Shares   string
}

// SocialFeed - посты одной платформы.
type SocialFeed struct {
	Platform string
	Posts    []SocialPost
}

// HomeTab - вкладка тизеров на главной.
type HomeTab struct {
	Key   string
	Items []ContentRecord
}

// Home - тизеры главной страницы.
type Home struct {
	News  []HomeTab
	Media []HomeTab
}

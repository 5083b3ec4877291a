package domain

// Visibility controls who can see a watchlist
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// NotificationType distinguishes notification events
type NotificationType string

const (
	NotificationFollow  NotificationType = "follow"
	NotificationLike    NotificationType = "like"
	NotificationSave    NotificationType = "save"
	NotificationComment NotificationType = "comment"
)

// User represents a Scenee account profile
type User struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Movie represents a catalog entry backed by TMDB metadata
type Movie struct {
	ID           string         `json:"id"`
	TMDBID       int64          `json:"tmdb_id"`
	Title        string         `json:"title"`
	Year         int            `json:"year"`
	ReleaseDate  string         `json:"release_date,omitempty"`
	Overview     string         `json:"overview"`
	PosterPath   string         `json:"poster_path,omitempty"`
	BackdropPath string         `json:"backdrop_path,omitempty"`
	Genres       []string       `json:"genres"`
	Runtime      int            `json:"runtime,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// Watchlist is a user-curated list of movies
type Watchlist struct {
	ID          string     `json:"id"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	OwnerID     string     `json:"owner_id"`
	Owner       *User      `json:"owner,omitempty"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CoverURL    string     `json:"cover_url"`
	LikeCount   int        `json:"like_count"`
	SaveCount   int        `json:"save_count"`
	ItemCount   int        `json:"item_count"`
	SavedBy     []string   `json:"saved_by"`
	Visibility  Visibility `json:"visibility,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// WatchlistItem is a single movie entry within a watchlist
type WatchlistItem struct {
	ID          string `json:"id"`
	WatchlistID string `json:"watchlist_id"`
	MovieID     string `json:"movie_id"`
	Movie       *Movie `json:"movie,omitempty"`
	TMDBID      int64  `json:"tmdb_id"`
	Notes       string `json:"notes"`
	Position    int    `json:"position"`
	Watched     bool   `json:"watched"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// WatchlistWithItems is the detail view of a watchlist
type WatchlistWithItems struct {
	Watchlist
	Items []WatchlistItem `json:"items"`
}

// Review is a rated movie review (rating scale 1-10)
type Review struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	MovieID   string `json:"movie_id"`
	User      *User  `json:"user,omitempty"`
	Rating    int    `json:"rating"`
	Review    string `json:"review"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Notification is an activity event delivered to a user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	ActorID   string           `json:"actor_id"`
	EntityID  string           `json:"entity_id"`
	IsRead    bool             `json:"is_read"`
	CreatedAt string           `json:"created_at"`
}

// LoginResponse carries the session credential and the authenticated user
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MessageResponse is the generic acknowledgement body used by several endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// SearchMoviesResponse is a paginated movie search result
type SearchMoviesResponse struct {
	Movies     []Movie `json:"movies"`
	TotalCount int     `json:"total_count"`
	TotalPages int     `json:"total_pages"`
	Page       int     `json:"page"`
}

// NotificationsResponse wraps a notification page with its unread count
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	Count         int            `json:"count"`
}

// FeedResponse is the home feed payload
type FeedResponse struct {
	Following []Watchlist `json:"following"`
	Results   []Movie     `json:"results"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
	HasMore   bool        `json:"has_more"`
}

// StatsResponse holds site-wide counters
type StatsResponse struct {
	TotalUsers      int `json:"total_users"`
	TotalWatchlists int `json:"total_watchlists"`
	TotalReviews    int `json:"total_reviews"`
}

// AskAIResponse is the answer to an AI recommendation query
type AskAIResponse struct {
	Answer string `json:"answer"`
}

package dto

import "time"

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Post struct {
	PostID       int64     `json:"post_id"`
	Hash         string    `json:"hash"`
	Filename     string    `json:"filename"`
	Mime         string    `json:"mime"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Filesize     int64     `json:"filesize"`
	Posted       time.Time `json:"posted"`
	NumericScore int       `json:"numeric_score"`
	Notes        int       `json:"notes"`
	Thumb        *Size     `json:"thumb,omitempty"`
}

type UploadResponse struct {
	Post       Post   `json:"post"`
	ThumbError string `json:"thumb_error,omitempty"`
}

type Vote struct {
	ImageID int64 `json:"image_id"`
	UserID  int64 `json:"user_id"`
	Score   int   `json:"score"`
}

type RankedPost struct {
	PostID int64 `json:"post_id"`
	Score  int   `json:"score"`
}

type PopularResponse struct {
	Period   string       `json:"period"`
	Title    string       `json:"title"`
	Start    time.Time    `json:"start"`
	Previous time.Time    `json:"previous"`
	Next     time.Time    `json:"next"`
	Posts    []RankedPost `json:"posts"`
}

type Note struct {
	NoteID  int64     `json:"note_id"`
	ImageID int64     `json:"image_id"`
	UserID  int64     `json:"user_id"`
	Date    time.Time `json:"date"`
	X1      int       `json:"x1"`
	Y1      int       `json:"y1"`
	Height  int       `json:"height"`
	Width   int       `json:"width"`
	Text    string    `json:"text"`
}

type NoteHistory struct {
	Note
	ReviewID int  `json:"review_id"`
	Enabled  bool `json:"enabled"`
}

type ImagePage struct {
	ImageIDs   []int64 `json:"image_ids"`
	Page       int     `json:"page"`
	TotalPages int     `json:"total_pages"`
}

type HistoryPage struct {
	Histories  []NoteHistory `json:"histories"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

type BlotterEntry struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text"`
	Important bool      `json:"important"`
}

type NavLink struct {
	Href     string `json:"href"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

type UserPagePart struct {
	Name    string `json:"name"`
	Content any    `json:"content"`
}

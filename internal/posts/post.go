package posts

import "errors"

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	Id    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

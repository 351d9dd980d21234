package models

// Validate checks if the category meets all validation requirements
func (c *Category) Validate() error {
	return validate.Struct(c)
}

// AddPost records a post on the category's side of the association
func (c *Category) AddPost(post *Post) {
	if post == nil {
		return
	}
	c.Posts = append(c.Posts, post)
}

package model

// User is a persisted random user profile.
type User struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Gender    string         `json:"gender" bson:"gender" validate:"required,max=20"`
	FirstName string         `json:"first_name" bson:"first_name" validate:"required,max=100"`
	LastName  string         `json:"last_name" bson:"last_name" validate:"required,max=100"`
	Location  map[string]any `json:"location" bson:"location" validate:"required"`
	Email     string         `json:"email" bson:"email" validate:"required,email,max=100"`
	Phone     string         `json:"phone" bson:"phone" validate:"required,max=100"`
	Picture   string         `json:"picture" bson:"picture" validate:"required,url,max=200"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserPage is one page of users, newest first.
type UserPage struct {
	Data       []*User `json:"data"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	TotalCount int64   `json:"total_count"`
}

func (p *UserPage) TotalPages() int {
	if p.Size <= 0 || p.TotalCount == 0 {
		return 1
	}
	return int((p.TotalCount + int64(p.Size) - 1) / int64(p.Size))
}

func (p *UserPage) HasPrev() bool { return p.Page > 1 }

func (p *UserPage) HasNext() bool { return p.Page < p.TotalPages() }

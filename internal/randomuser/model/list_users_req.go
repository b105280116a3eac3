package model

type ListUsersReq struct {
	Page int `query:"page" json:"page" validate:"omitempty,min=1"`
	Size int `query:"size" json:"size" validate:"omitempty,min=1,max=100"`
}

func (r *ListUsersReq) Validate() error {
	// Set default pagination
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

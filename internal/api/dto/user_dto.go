package dto

import "github.com/spec-kit/user-directory/internal/domain"

// UserCreateRequest is the POST /api/users payload.
type UserCreateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Age        int    `json:"age"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

// UserUpdateRequest is the PUT /api/users/:id payload; absent fields are
// left untouched.
type UserUpdateRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Age        *int    `json:"age"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// Patch converts the request into a domain patch.
func (r UserUpdateRequest) Patch() domain.UserPatch {
	patch := domain.UserPatch{
		Name:       r.Name,
		Email:      r.Email,
		Age:        r.Age,
		Department: r.Department,
	}
	if r.Status != nil {
		status := domain.UserStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// Pagination describes the slice of a sorted listing.
type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// ListFilters echoes the applied listing filters; "all" means unfiltered.
type ListFilters struct {
	Department string `json:"department"`
	Status     string `json:"status"`
}

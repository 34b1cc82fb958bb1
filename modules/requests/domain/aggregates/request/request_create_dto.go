package request

import (
	"strings"

	"github.com/requesthub/requesthub/pkg/constants"
)

type CreateDTO struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1"`
}

func (d *CreateDTO) Normalize() {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	d.Description = strings.TrimSpace(d.Description)
}

func (d *CreateDTO) Validate() error {
	return constants.Validate.Struct(d)
}

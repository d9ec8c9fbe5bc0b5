// Package dto holds the JSON request and response shapes of the API and the
// mapping from models to responses.
package dto

import (
	"github.com/jinzhu/copier"
	"github.com/templui/habitkit/internal/model"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// calendar days go over the wire as YYYY-MM-DD
var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: model.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(model.Date).String(), nil
			},
		},
		{
			SrcType: (*model.Date)(nil),
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				d, _ := src.(*model.Date)
				if d == nil {
					return (*string)(nil), nil
				}
				s := d.String()
				return &s, nil
			},
		},
	},
}

func copyInto(dst, src any) error {
	return copier.CopyWithOption(dst, src, copyOptions)
}

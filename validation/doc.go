// Package validation validates configuration and request structs using
// `validate` struct tags (github.com/go-playground/validator/v10).
//
// Field names in errors follow the json tag of each field, with nested
// paths such as "messages[0].role".
//
//	type Request struct {
//	    Model    string    `json:"model" validate:"required"`
//	    Messages []Message `json:"messages" validate:"required,min=1,dive"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    var verr *validation.Error
//	    errors.As(err, &verr) // verr.Fields lists every failed field
//	}
package validation

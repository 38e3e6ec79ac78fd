// Package validator validates request structs.
//
// Business code depends on the Validator interface; V10Validator backs it with
// go-playground/validator v10, English messages and snake_case field keys.
package validator

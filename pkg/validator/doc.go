// Package validator provides small composable validation rules for request
// input. Apply runs a set of rules and returns all failures at once as a
// ValidationErrors value, which the HTTP layer renders as a 400 with
// per-field details.
//
//	if err := validator.Apply(
//	    validator.ValidEmail("email", req.Email),
//	    validator.StrongPassword("password", req.Password),
//	); err != nil {
//	    return err
//	}
package validator

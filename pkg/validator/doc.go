// Package validator provides small composable validation rules.
//
// A Rule pairs a check with the ValidationError reported when it fails.
// Apply runs all rules; ApplyFirst keeps only the first failure per field,
// which suits forms that show one message under each input.
//
//	err := validator.ApplyFirst(
//	    validator.Required("email", p.Email, "Email is required"),
//	    validator.Email("email", p.Email, "Please enter a valid email"),
//	    validator.MinLen("password", p.Password, 6, ""),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//	    fmt.Println(errs.First("email"))
//	}
//
// FromServer turns an API error body carrying per-field messages into
// ValidationErrors so client-side and server-side failures look the same.
package validator

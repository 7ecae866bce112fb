// Package errs holds the error kinds shared by the domain model, the use cases and the
// repositories of the delivery service.
//
// Every kind wraps a sentinel, so callers classify with errors.Is and read details with
// errors.As:
//   - ErrValueIsRequired, ErrValueIsInvalid and ErrValueIsOutOfRange come from
//     constructors and setters of value objects, aggregates and commands. The command
//     handlers report them as VALIDATION_ERROR.
//   - ErrObjectNotFound comes from repositories. ObjectNotFoundError.ParamName tells which
//     aggregate was missing, which selects ORDER_NOT_FOUND, RESTAURANT_NOT_FOUND or
//     DELIVERY_PERSON_NOT_FOUND.
//
// Messages never contain raw newlines from user input.
package errs

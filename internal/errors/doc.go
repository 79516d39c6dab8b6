// Package errors provides structured errors for the age-toolbox service.
//
// An Error carries a Code, a message that is safe to show to API callers,
// an optional wrapped cause and free-form metadata. Codes map to HTTP
// statuses for the REST handlers and to gRPC codes for the health server.
//
// # Basic Usage
//
//	err := errors.NotFoundf("stunt %d not found", id)
//	err := errors.InvalidArgument("cost_max must be an integer").
//	    WithMeta("cost_max", raw)
//
// Wrapping keeps the code of an inner Error; foreign errors become Internal
// unless they are context cancellation or deadline errors:
//
//	if err := repo.Delete(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to delete stunt")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRequired("cost", string(input.Cost), vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
// The resulting InvalidArgument error exposes the per-field messages under
// the "validation_errors" metadata key.
//
// # Layer Guidelines
//
// Repositories return NotFound with the missing ID and wrap driver errors.
// Orchestrators validate input and wrap repository errors with business
// context. Handlers translate to transport status and log Internal errors.
package errors

// Package httputil holds the JSON response helpers shared by the HTTP
// handlers.
//
// [WriteError] maps an [errors.Error] code to an HTTP status so every
// handler reports failures the same way:
//
//	INVALID_INPUT, INVALID_FORMAT, INVALID_WEIGHT,
//	INVALID_PATH, PROTOCOL_MISUSE             400 Bad Request
//	NOT_FOUND, FILE_NOT_FOUND                 404 Not Found
//	REJECTED_EDIT                             409 Conflict
//	UNSUPPORTED                               415 Unsupported Media Type
//	INVALID_GRAPH                             422 Unprocessable Entity
//	anything else                             500 Internal Server Error
//
// [errors.Error]: github.com/matzehuels/graphsketch/pkg/errors.Error
package httputil

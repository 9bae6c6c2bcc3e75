// Package application implements the job-application relay: a multipart
// submission is streamed into temporary storage, validated, rendered into an
// HTML notification, mailed with the uploads attached, and cleaned up.
//
// Errors fall into three kinds. *ValidationError is the client's fault and
// maps to 400 with its own message. *DispatchError and *UnexpectedError map
// to 500 with a generic message. StatusCode implements the mapping and plugs
// into middlewares.ErrorHandler.
package application

// Package api handles incoming HTTP requests, request validation and
// response formatting for the segmentation endpoints. It translates HTTP
// concerns into calls on the segment and dictionary services and maps their
// errors to sanitized responses.
package api

// Package service contains the application use cases. It coordinates the
// dictionary store (defined in internal/store) with the segmentation checker
// from internal/domain/segment and applies the transactional and concurrency
// boundaries those use cases need.
//
// Services receive their dependencies through constructor injection and
// translate store errors into the service-level sentinels the API layer maps
// to HTTP status codes.
package service

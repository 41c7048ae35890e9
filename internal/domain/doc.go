// Package domain contains the stored dictionary entity, its validation rules
// and the errors shared by the service, store and API layers. The pure
// segmentation algorithm lives in the segment subpackage.
package domain
